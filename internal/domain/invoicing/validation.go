package invoicing

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/Timesheet-api/internal/domain"
)

// DateLayout formato de fecha de calendario (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate valida y convierte una fecha YYYY-MM-DD (UTC, sin hora).
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil || len(strings.TrimSpace(s)) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%w: %s debe tener formato YYYY-MM-DD", domain.ErrInvalidInput, field)
	}
	return t, nil
}

// ValidatePaymentLink exige una URL http(s) cuyo host sea gatewayDomain o un subdominio.
// La cadena vacía es válida: significa borrar el enlace.
func ValidatePaymentLink(raw, gatewayDomain string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return fmt.Errorf("%w: enlace de pago inválido", domain.ErrInvalidInput)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("%w: el enlace de pago debe ser http(s)", domain.ErrInvalidInput)
	}
	host := strings.ToLower(u.Hostname())
	gatewayDomain = strings.ToLower(strings.TrimPrefix(gatewayDomain, "."))
	if host != gatewayDomain && !strings.HasSuffix(host, "."+gatewayDomain) {
		return fmt.Errorf("%w: el enlace de pago debe pertenecer a %s", domain.ErrInvalidInput, gatewayDomain)
	}
	return nil
}
