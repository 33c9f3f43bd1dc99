package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/clientes-api/internal/application/dto"
	"github.com/jhoicas/clientes-api/internal/domain"
	"github.com/jhoicas/clientes-api/internal/domain/entity"
	"github.com/jhoicas/clientes-api/internal/domain/repository"
)

// LookupStatus resultado de cargar un cliente por ID.
type LookupStatus int

const (
	LookupFound LookupStatus = iota
	LookupNotFound
	LookupFailed
)

// Lookup resultado explícito de Load. Customer solo es válido con LookupFound; Err solo con LookupFailed.
type Lookup struct {
	Status   LookupStatus
	Customer *dto.CustomerResponse
	Err      error
}

// CustomerUseCase operaciones CRUD sobre clientes. Sin estado entre peticiones.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// List devuelve todos los clientes (nunca nil).
func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

// Create persiste un cliente nuevo con los campos recibidos.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	customer := fromRequest(in)
	if err := uc.repo.Insert(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Load resuelve el ID a una copia desacoplada del documento.
func (uc *CustomerUseCase) Load(ctx context.Context, id string) Lookup {
	customer, err := uc.repo.FindByID(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return Lookup{Status: LookupNotFound}
	case err != nil:
		return Lookup{Status: LookupFailed, Err: err}
	}
	return Lookup{Status: LookupFound, Customer: toCustomerResponse(customer)}
}

// Update sobrescribe los cinco campos con el cuerpo recibido (sin merge) y devuelve el documento resultante.
// Si el documento desapareció entre Load y el reemplazo devuelve domain.ErrNotFound.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	updated, err := uc.repo.ReplaceByID(ctx, id, fromRequest(in))
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(updated), nil
}

// Delete elimina el cliente por ID.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.DeleteByID(ctx, id)
}

func fromRequest(in dto.CustomerRequest) *entity.Customer {
	return &entity.Customer{
		Name:          in.Name,
		NationalID:    in.NationalID,
		BranchCode:    in.BranchCode,
		AccountNumber: in.AccountNumber,
		BankName:      in.BankName,
	}
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		NationalID:    c.NationalID,
		BranchCode:    c.BranchCode,
		AccountNumber: c.AccountNumber,
		BankName:      c.BankName,
	}
}
