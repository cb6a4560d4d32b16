// Package repositories holds the gorm queries behind the services. Every
// repository is bound to a *gorm.DB and can be rebound to a transaction
// with WithTx. Missing rows surface as gorm.ErrRecordNotFound.
package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// IsNotFound reports whether err means "no such row".
func IsNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }
