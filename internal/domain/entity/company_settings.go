package entity

import "time"

// CompanySettings datos del emisor por owner; se usan por defecto al facturar.
type CompanySettings struct {
	OwnerID     string
	CompanyName string
	Address     string
	TaxID       string
	Email       string
	Phone       string
	BankInfo    string
	UpdatedAt   time.Time
}

// CompanyInfo convierte la configuración en el snapshot que guarda la factura.
func (s *CompanySettings) CompanyInfo() CompanyInfo {
	return CompanyInfo{
		Name:     s.CompanyName,
		Address:  s.Address,
		TaxID:    s.TaxID,
		BankInfo: s.BankInfo,
	}
}
