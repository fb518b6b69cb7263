// Package correlationid carries an identifier for one operator session (or
// one report run) through context so every log line can be tied to it.
package correlationid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the attribute name used when the id is written out.
const Header = "correlation_id"

type ctxKey struct{}

// New returns a fresh time-ordered id.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}
