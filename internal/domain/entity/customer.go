package entity

// Customer representa un cliente bancario almacenado como documento.
// Los campos nil están ausentes en el documento (distinto de cadena vacía).
type Customer struct {
	ID            string  // ObjectID en hexadecimal, asignado por el almacén
	Name          *string // nome
	NationalID    *string // cpf, sin validación de formato
	BranchCode    *string // agencia
	AccountNumber *string // conta
	BankName      *string // nomeBanco
}
