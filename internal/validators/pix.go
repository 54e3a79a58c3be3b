package validators

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Pix key kinds as registered with the central bank directory.
const (
	PixKeyCPF    = "cpf"
	PixKeyPhone  = "phone"
	PixKeyEmail  = "email"
	PixKeyRandom = "random"
)

var cpfPattern = regexp.MustCompile(`^\d{11}$`)
var phonePattern = regexp.MustCompile(`^\+?\d{10,13}$`)

// DetectPixKeyType classifies a raw Pix key, returning its kind and whether
// it is acceptable at all. Formatting characters common in pasted CPFs and
// phone numbers are stripped before matching.
func DetectPixKeyType(key string) (string, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}

	if strings.Contains(key, "@") {
		at := strings.LastIndex(key, "@")
		if at > 0 && at < len(key)-1 {
			return PixKeyEmail, true
		}
		return "", false
	}

	if _, err := uuid.Parse(key); err == nil {
		return PixKeyRandom, true
	}

	stripped := strings.NewReplacer(".", "", "-", "", "(", "", ")", "", " ", "").Replace(key)

	if cpfPattern.MatchString(stripped) {
		return PixKeyCPF, true
	}
	if phonePattern.MatchString(stripped) {
		return PixKeyPhone, true
	}

	return "", false
}
