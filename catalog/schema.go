package catalog

import (
	_ "embed"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pkg/errors"
)

//go:embed schema.cue
var schemaSource []byte

// schemaValidator checks catalog documents against the embedded CUE schema
// before they are decoded.
type schemaValidator struct {
	ctx    *cue.Context
	schema cue.Value
}

func newSchemaValidator() (*schemaValidator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource)
	if schema.Err() != nil {
		return nil, errors.Wrap(schema.Err(), "compiling catalog schema")
	}

	return &schemaValidator{ctx: ctx, schema: schema}, nil
}

func (v *schemaValidator) validate(definition string, doc []byte) error {
	data := v.ctx.CompileBytes(doc)
	if data.Err() != nil {
		return errors.Wrapf(ErrMalformed, "%v", data.Err())
	}

	def := v.schema.LookupPath(cue.ParsePath(definition))
	if def.Err() != nil {
		return errors.Wrapf(def.Err(), "looking up %s", definition)
	}

	unified := def.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return errors.Wrapf(ErrMalformed, "%s: %v", definition, err)
	}

	return nil
}

// ValidateDepthTable checks a depth to width to macro document.
func ValidateDepthTable(doc []byte) error {
	v, err := newSchemaValidator()
	if err != nil {
		return err
	}

	return v.validate("#DepthTable", doc)
}

// ValidatePortTable checks a type to port mapping document.
func ValidatePortTable(doc []byte) error {
	v, err := newSchemaValidator()
	if err != nil {
		return err
	}

	return v.validate("#PortTable", doc)
}
