package invoicing

import (
	"fmt"
	"strconv"
	"strings"
)

// NumberPrefix prefijo del número visible de factura.
const NumberPrefix = "INV-"

// NextNumber calcula el número siguiente a partir del último número emitido por el owner.
// Sin facturas previas (o sin sufijo numérico legible) se empieza en INV-0001.
func NextNumber(last string) string {
	return fmt.Sprintf("%s%04d", NumberPrefix, parseSequence(last)+1)
}

// parseSequence extrae los dígitos finales del número (INV-0042 -> 42).
func parseSequence(number string) int {
	number = strings.TrimSpace(number)
	i := len(number)
	for i > 0 && number[i-1] >= '0' && number[i-1] <= '9' {
		i--
	}
	if i == len(number) {
		return 0
	}
	n, err := strconv.Atoi(number[i:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
