package partner

import (
	"regexp"
	"strings"

	"github.com/jubilee-retail/backoffice/internal/domain/shared"
)

var codeRegex = regexp.MustCompile(`^[A-Za-z0-9\-_]+$`)

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validateCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Code cannot exceed 50 characters")
	}
	if !codeRegex.MatchString(code) {
		return shared.NewDomainError("INVALID_CODE", "Code can only contain letters, numbers, hyphens, and underscores")
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}
