package pack

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/mech-arsenal/internal/errors"
)

// Format is the encoding of a pack file
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format by file extension. Anything that is not
// .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

//go:embed schema/pack.schema.json
var schemaJSON []byte

const schemaURL = "https://arsenal.mech/schemas/pack.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
})

// LoadFile reads and decodes a pack file
func LoadFile(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read pack file "+path)
	}

	p, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load pack %s", path)
	}

	slog.Info("loaded item pack",
		"path", path,
		"key", p.Key(),
		"items", p.Len())

	return p, nil
}

// Decode validates and builds a pack.
// Returns an InvalidArgument error with reason DATA_ERROR listing every
// problem found.
func Decode(data []byte, format Format) (*Pack, error) {
	var (
		raw rawPack
		doc any
		err error
	)

	switch format {
	case FormatJSON:
		doc, err = jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, dataError("invalid JSON: %v", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, dataError("invalid YAML: %v", err)
		}
		// YAML is checked against the same schema through its JSON form
		encoded, err := json.Marshal(&raw)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode pack for validation")
		}
		doc, err = jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
		if err != nil {
			return nil, errors.Wrap(err, "failed to re-read encoded pack")
		}
	default:
		return nil, errors.InvalidArgumentf("unsupported pack format %q", format)
	}

	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	if format == FormatJSON {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, dataError("invalid pack: %v", err)
		}
	}

	return build(&raw)
}

func dataError(format string, args ...interface{}) error {
	return errors.InvalidArgumentf(format, args...).WithReason(ReasonDataError)
}

// validateSchema reports every schema violation as a data problem
func validateSchema(doc any) error {
	sch, err := compileSchema()
	if err != nil {
		return errors.Wrap(err, "failed to compile pack schema")
	}

	err = sch.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return errors.Wrap(err, "failed to validate pack")
	}

	p := newProblems()
	printer := message.NewPrinter(language.English)
	collectViolations(ve, printer, p)
	if p.n == 0 {
		p.add("(root)", ve.Error())
	}
	return p.err()
}

func collectViolations(ve *jsonschema.ValidationError, printer *message.Printer, p *problems) {
	if len(ve.Causes) == 0 {
		p.add(dataPath(ve.InstanceLocation), ve.ErrorKind.LocalizedString(printer))
		return
	}
	for _, cause := range ve.Causes {
		collectViolations(cause, printer, p)
	}
}

// dataPath renders ["items", "3", "name"] as "items[3].name"
func dataPath(location []string) string {
	if len(location) == 0 {
		return "(root)"
	}
	var b strings.Builder
	for _, seg := range location {
		if _, err := strconv.Atoi(seg); err == nil {
			b.WriteString("[" + seg + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}
