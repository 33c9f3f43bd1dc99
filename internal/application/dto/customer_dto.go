package dto

// CustomerRequest cuerpo de POST y PUT /clientes. Todos los campos son opcionales y no se validan.
type CustomerRequest struct {
	Name          *string `json:"nome" example:"Cliente01"`
	NationalID    *string `json:"cpf" example:"010.101.212-00"`
	BranchCode    *string `json:"agencia" example:"4321"`
	AccountNumber *string `json:"conta" example:"01010-0"`
	BankName      *string `json:"nomeBanco" example:"BankPersonal"`
}

// CustomerResponse salida de un cliente. Los campos ausentes en el documento se omiten.
type CustomerResponse struct {
	ID            string  `json:"_id" example:"65a1f0c2e4b0a1b2c3d4e5f6"`
	Name          *string `json:"nome,omitempty"`
	NationalID    *string `json:"cpf,omitempty"`
	BranchCode    *string `json:"agencia,omitempty"`
	AccountNumber *string `json:"conta,omitempty"`
	BankName      *string `json:"nomeBanco,omitempty"`
}
