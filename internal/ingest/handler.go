package ingest

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func readUpload(c *fiber.Ctx) ([]byte, string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "파일이 없습니다.")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "파일을 열 수 없습니다.")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "파일을 읽을 수 없습니다.")
	}
	return data, fileHeader.Filename, nil
}

// POST /api/invoices/upload-xlsx
func UploadXLSXHandler(ing *Ingestor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, filename, err := readUpload(c)
		if err != nil {
			return err
		}
		if !strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "xlsx 파일만 업로드할 수 있습니다.")
		}

		result, err := ing.IngestWorkbook(c.Context(), data, filename)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(result)
	}
}

// POST /api/invoices/upload-pdf
func UploadPDFHandler(ing *Ingestor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, filename, err := readUpload(c)
		if err != nil {
			return err
		}
		if len(data) < 4 || string(data[:4]) != "%PDF" {
			return fiber.NewError(fiber.StatusBadRequest, "PDF 파일만 업로드할 수 있습니다.")
		}

		result, err := ing.IngestPDF(c.Context(), data, filename)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(result)
	}
}

// POST /api/extract - 저장 없이 항목 추출 결과만 반환 (미리보기)
func ExtractHandler(ing *Ingestor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, filename, err := readUpload(c)
		if err != nil {
			return err
		}

		fields, err := ing.ExtractOnly(c.Context(), data)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{
			"fileName":       filename,
			"date":           fields.Date,
			"supplier":       fields.Supplier,
			"receiver":       fields.Receiver,
			"businessNumber": fields.BusinessNumber,
			"itemName":       fields.ItemName,
			"specification":  fields.Specification,
			"qty":            fields.Quantity,
			"unitPrice":      fields.UnitPrice,
			"supplyPrice":    fields.SupplyValue,
			"total":          fields.Total,
		})
	}
}
