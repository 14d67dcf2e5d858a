package client

import (
	"errors"
	"strings"

	"jangbu-backend/internal/format"
	"jangbu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// -------------------------
// Request/Response 타입
// -------------------------

type ContactInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type CreateClientRequest struct {
	Name           string         `json:"name"`           // 상호명
	Representative string         `json:"representative"` // 대표자
	BizNo          string         `json:"bizNo"`          // 사업자등록번호
	Phone          string         `json:"phone"`
	Email          string         `json:"email"`
	Address        string         `json:"address"`
	Bank           string         `json:"bank"`
	AccountNo      string         `json:"accountNo"`
	Memo           string         `json:"memo"`
	Contacts       []ContactInput `json:"contacts"`
}

type UpdateClientRequest struct {
	Name           *string         `json:"name"`
	Representative *string         `json:"representative"`
	BizNo          *string         `json:"bizNo"`
	Phone          *string         `json:"phone"`
	Email          *string         `json:"email"`
	Address        *string         `json:"address"`
	Bank           *string         `json:"bank"`
	AccountNo      *string         `json:"accountNo"`
	Memo           *string         `json:"memo"`
	Contacts       *[]ContactInput `json:"contacts"`
}

type ClientResponse struct {
	ID             uint           `json:"id"`
	Name           string         `json:"name"`
	Representative string         `json:"representative"`
	BizNo          string         `json:"bizNo"`
	Phone          string         `json:"phone"`
	Email          string         `json:"email"`
	Address        string         `json:"address"`
	Bank           string         `json:"bank"`
	AccountNo      string         `json:"accountNo"`
	Memo           string         `json:"memo"`
	Contacts       []ContactInput `json:"contacts"`
	CreatedAt      string         `json:"createdAt"`
}

func toResponse(m *models.Client) ClientResponse {
	contacts := make([]ContactInput, 0, len(m.Contacts))
	for _, ct := range m.Contacts {
		contacts = append(contacts, ContactInput{Name: ct.Name, Phone: ct.Phone, Email: ct.Email})
	}
	return ClientResponse{
		ID:             m.ID,
		Name:           m.Name,
		Representative: m.Representative,
		BizNo:          m.BizNo,
		Phone:          m.Phone,
		Email:          m.Email,
		Address:        m.Address,
		Bank:           m.Bank,
		AccountNo:      m.AccountNo,
		Memo:           m.Memo,
		Contacts:       contacts,
		CreatedAt:      m.CreatedAt.Format("2006-01-02"),
	}
}

// -------------------------
// 거래처 CRUD
// -------------------------

// POST /api/clients
func CreateClientHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "잘못된 요청입니다.")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "상호명은 비울 수 없습니다.")
		}

		client := models.Client{
			Name:           strings.TrimSpace(body.Name),
			Representative: body.Representative,
			BizNo:          format.BizNumber(body.BizNo),
			Phone:          format.Phone(body.Phone),
			Email:          body.Email,
			Address:        body.Address,
			Bank:           body.Bank,
			AccountNo:      format.AccountNumber(body.Bank, body.AccountNo),
			Memo:           body.Memo,
		}
		for _, ct := range body.Contacts {
			client.Contacts = append(client.Contacts, models.Contact{
				Name:  ct.Name,
				Phone: format.Phone(ct.Phone),
				Email: ct.Email,
			})
		}

		if err := db.Create(&client).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "거래처 추가 실패")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&client))
	}
}

// GET /api/clients
func ListClientsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var clients []models.Client
		q := db.Preload("Contacts").Order("name ASC")

		// 상호명 부분 검색
		if search := c.Query("q"); search != "" {
			q = q.Where("name LIKE ?", "%"+search+"%")
		}

		if err := q.Find(&clients).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "거래처 목록 조회 실패")
		}

		resp := make([]ClientResponse, 0, len(clients))
		for i := range clients {
			resp = append(resp, toResponse(&clients[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/clients/:id
func GetClientHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "잘못된 ID입니다.")
		}

		var client models.Client
		if err := db.Preload("Contacts").First(&client, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "거래처를 찾을 수 없습니다.")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "거래처 조회 실패")
		}
		return c.JSON(toResponse(&client))
	}
}

// PUT /api/clients/:id
func UpdateClientHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "잘못된 ID입니다.")
		}

		var body UpdateClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "잘못된 요청입니다.")
		}

		var client models.Client
		if err := db.Preload("Contacts").First(&client, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "거래처를 찾을 수 없습니다.")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "거래처 조회 실패")
		}

		if body.Name != nil {
			if strings.TrimSpace(*body.Name) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "상호명은 비울 수 없습니다.")
			}
			client.Name = strings.TrimSpace(*body.Name)
		}
		if body.Representative != nil {
			client.Representative = *body.Representative
		}
		if body.BizNo != nil {
			client.BizNo = format.BizNumber(*body.BizNo)
		}
		if body.Phone != nil {
			client.Phone = format.Phone(*body.Phone)
		}
		if body.Email != nil {
			client.Email = *body.Email
		}
		if body.Address != nil {
			client.Address = *body.Address
		}
		if body.Bank != nil {
			client.Bank = *body.Bank
		}
		if body.AccountNo != nil {
			client.AccountNo = format.AccountNumber(client.Bank, *body.AccountNo)
		}
		if body.Memo != nil {
			client.Memo = *body.Memo
		}

		if err := db.Save(&client).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "거래처 수정 실패")
		}

		// 담당자 목록은 통째로 교체
		if body.Contacts != nil {
			if err := db.Where("client_id = ?", client.ID).Delete(&models.Contact{}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "담당자 수정 실패")
			}
			client.Contacts = nil
			for _, ct := range *body.Contacts {
				client.Contacts = append(client.Contacts, models.Contact{
					ClientID: client.ID,
					Name:     ct.Name,
					Phone:    format.Phone(ct.Phone),
					Email:    ct.Email,
				})
			}
			if len(client.Contacts) > 0 {
				if err := db.Create(&client.Contacts).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "담당자 수정 실패")
				}
			}
		}

		return c.JSON(toResponse(&client))
	}
}

// DELETE /api/clients/:id
func DeleteClientHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "잘못된 ID입니다.")
		}

		res := db.Select("Contacts").Delete(&models.Client{ID: uint(id)})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "거래처 삭제 실패")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "거래처를 찾을 수 없습니다.")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
