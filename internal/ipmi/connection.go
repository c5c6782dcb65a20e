package ipmi

import (
	"fmt"
	"strings"

	"codeberg.org/mutker/ipmictl/internal/errors"
	"github.com/go-playground/validator/v10"
)

// DefaultInterface is the ipmitool transport used for remote controllers.
const DefaultInterface = "lanplus"

// ConnectionConfig identifies the remote controller. It is fixed for the
// lifetime of a Client.
type ConnectionConfig struct {
	Host      string `validate:"required,hostname_rfc1123|ip"`
	Username  string `validate:"required"`
	Password  string
	Interface string `validate:"omitempty,oneof=lan lanplus"`
}

var validate = validator.New()

// Validate checks that the connection can be addressed.
func (c ConnectionConfig) Validate() error {
	errFactory := errors.New()

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errFactory.Wrap(ErrInvalidConnection, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag()))
	}

	return errFactory.WithData(ErrInvalidConnection, strings.Join(fields, ", "))
}

func (c ConnectionConfig) iface() string {
	if c.Interface == "" {
		return DefaultInterface
	}

	return c.Interface
}

// args returns the fixed connection prefix of every invocation.
func (c ConnectionConfig) args() []string {
	return []string{
		"-I", c.iface(),
		"-H", c.Host,
		"-U", c.Username,
		"-P", c.Password,
	}
}

// String renders the connection without the secret.
func (c ConnectionConfig) String() string {
	return fmt.Sprintf("%s@%s (%s)", c.Username, c.Host, c.iface())
}
