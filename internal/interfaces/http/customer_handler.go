package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/clientes-api/internal/application/dto"
	"github.com/jhoicas/clientes-api/internal/application/usecase"
	"github.com/jhoicas/clientes-api/internal/domain"
	"github.com/jhoicas/clientes-api/pkg/logger"
)

const (
	MsgNotFound = "Cliente não encontrado"
	MsgDeleted  = "Cliente removido com sucesso"
)

// CustomerHandler maneja las peticiones HTTP de /clientes.
type CustomerHandler struct {
	uc  *usecase.CustomerUseCase
	log *logger.Logger
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Retorna todos os clientes
// @Tags         clientes
// @Produce      json
// @Success      200  {array}   dto.CustomerResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /clientes [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Adiciona um novo cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        customer  body  dto.CustomerRequest  true  "Objeto do cliente"
// @Success      201  {object}  dto.CustomerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /clientes [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := parseBody(c, &in); err != nil {
		return h.fail(c, fiber.StatusBadRequest, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Retorna um cliente pelo ID
// @Tags         clientes
// @Produce      json
// @Param        id   path  string  true  "ID do cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /clientes/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	lk := h.uc.Load(c.UserContext(), utils.CopyString(c.Params("id")))
	if lk.Status != usecase.LookupFound {
		return h.lookupFailed(c, lk)
	}
	return c.JSON(lk.Customer)
}

// Update godoc
// @Summary      Atualiza um cliente pelo ID
// @Description  Sobrescreve os cinco campos; campos omitidos ficam ausentes.
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        id        path  string               true  "ID do cliente"
// @Param        customer  body  dto.CustomerRequest  true  "Objeto do cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /clientes/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := parseBody(c, &in); err != nil {
		return h.fail(c, fiber.StatusBadRequest, err)
	}
	id := utils.CopyString(c.Params("id"))
	if lk := h.uc.Load(c.UserContext(), id); lk.Status != usecase.LookupFound {
		return h.lookupFailed(c, lk)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: MsgNotFound})
	}
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Deleta um cliente pelo ID
// @Tags         clientes
// @Produce      json
// @Param        id   path  string  true  "ID do cliente"
// @Success      204  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /clientes/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id := utils.CopyString(c.Params("id"))
	if lk := h.uc.Load(c.UserContext(), id); lk.Status != usecase.LookupFound {
		return h.lookupFailed(c, lk)
	}
	err := h.uc.Delete(c.UserContext(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: MsgNotFound})
	}
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, err)
	}
	// 204: fasthttp descarta el cuerpo
	return c.Status(fiber.StatusNoContent).JSON(dto.MessageResponse{Message: MsgDeleted})
}

// lookupFailed responde 404 o 500 según el resultado de Load.
func (h *CustomerHandler) lookupFailed(c *fiber.Ctx, lk usecase.Lookup) error {
	if lk.Status == usecase.LookupNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: MsgNotFound})
	}
	return h.fail(c, fiber.StatusInternalServerError, lk.Err)
}

// fail registra el error y lo devuelve con el texto original del almacén.
func (h *CustomerHandler) fail(c *fiber.Ctx, status int, err error) error {
	ev := h.log.Warn()
	if status >= fiber.StatusInternalServerError {
		ev = h.log.Error()
	}
	ev.Err(err).
		Str("request_id", RequestID(c)).
		Int("status", status).
		Msg("operación de cliente fallida")
	return c.Status(status).JSON(dto.ErrorResponse{Message: err.Error()})
}

// parseBody decodifica el cuerpo JSON. Sin cuerpo o sin Content-Type JSON se trata como objeto vacío.
func parseBody(c *fiber.Ctx, in *dto.CustomerRequest) error {
	if len(c.Body()) == 0 || !c.Is("json") {
		return nil
	}
	return c.BodyParser(in)
}
