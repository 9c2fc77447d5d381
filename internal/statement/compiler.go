package statement

import (
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/zeebo/xxh3"

	"nebula-mapper/internal/common"
	"nebula-mapper/internal/document"
	"nebula-mapper/internal/mapping"
	"nebula-mapper/internal/nql"
	"nebula-mapper/internal/transform"
)

// DefaultBatchSize is the number of rows per INSERT statement when the
// caller gives no positive batch size.
const DefaultBatchSize = 500

// CompilerConfig holds configuration for the compiler.
type CompilerConfig struct {
	// Registry provides the transforms; nil means the built-ins.
	Registry *transform.Registry
	// Resolver navigates documents; nil means the shared default resolver.
	Resolver *document.Resolver
	// Logger receives debug records; nil means slog.Default().
	Logger *slog.Logger
	// MinimalQuoting back-tick quotes only identifiers that need it instead
	// of every identifier.
	MinimalQuoting bool
}

// DefaultCompilerConfig returns the default compiler configuration.
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{}
}

// Compiler turns documents into statements. It holds no per-compile state,
// so one compiler may serve concurrent Compile calls.
type Compiler struct {
	registry *transform.Registry
	resolver *document.Resolver
	logger   *slog.Logger
	quote    nql.Quoter
}

// NewCompiler creates a new compiler with the given configuration.
func NewCompiler(config CompilerConfig) *Compiler {
	c := &Compiler{
		registry: config.Registry,
		resolver: config.Resolver,
		logger:   config.Logger,
		quote:    nql.EscapeIdentifier,
	}

	if c.registry == nil {
		c.registry = transform.NewRegistry()
	}

	if c.resolver == nil {
		c.resolver = document.DefaultResolver()
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	if config.MinimalQuoting {
		c.quote = nql.QuoteIdentifier
	}

	return c
}

// Compile emits the statements for doc: all vertex mappings in declaration
// order, then all edge mappings. A batchSize <= 0 selects DefaultBatchSize.
// On error no statements are returned.
func (c *Compiler) Compile(m *mapping.GraphMapping, doc any, batchSize int) ([]string, error) {
	if m == nil {
		return nil, errors.New("mapping is nil")
	}

	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var stmts []string

	for i := range m.Vertices {
		out, err := c.compileVertices(m, &m.Vertices[i], doc, batchSize)
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, out...)
	}

	for i := range m.Edges {
		out, err := c.compileEdges(m, &m.Edges[i], doc, batchSize)
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, out...)
	}

	c.logger.Debug("compiled document",
		"tags", len(m.Vertices), "edges", len(m.Edges), "statements", len(stmts))

	return stmts, nil
}

func (c *Compiler) compileVertices(
	m *mapping.GraphMapping,
	v *mapping.VertexMapping,
	doc any,
	batchSize int,
) ([]string, error) {
	element := "tag " + v.TagName

	records, err := c.resolver.ArrayOrSingle(doc, v.SourcePath)
	if err != nil {
		return nil, &Error{Op: "resolve", Element: element, Path: v.SourcePath, Err: err}
	}

	names := nql.QuoteAll(mapping.PropertyNames(v.Properties), c.quote)
	tag := c.quote(v.TagName)
	dynamic := v.DynamicFields.Enabled

	b := newBatch("INSERT VERTEX "+tag+" ("+nql.JoinValues(names)+") VALUES ", batchSize, c.logger, element)

	var (
		stmts   []string
		seen    map[xxh3.Uint128]struct{}
		skipped int
	)

	if !dynamic {
		seen = make(map[xxh3.Uint128]struct{}, len(records))
	}

	for _, record := range records {
		id, err := vertexID(c.resolver, record, v.KeyPath, m.Settings.KeySeparator)
		if err != nil {
			return nil, inElement(err, element)
		}

		if !dynamic {
			h := xxh3.HashString128(id)
			if _, dup := seen[h]; dup {
				skipped++
				continue
			}

			seen[h] = struct{}{}
		}

		values, err := c.propertyValues(record, v.Properties, &m.Settings)
		if err != nil {
			return nil, inElement(err, element)
		}

		if dynamic {
			extraNames, extraValues := c.dynamicValues(record, v)
			stmts = append(stmts, "UPSERT VERTEX "+tag+" "+id+
				" ("+nql.JoinValues(slices.Concat(names, extraNames))+")"+
				" VALUES ("+nql.JoinValues(append(values, extraValues...))+");")

			continue
		}

		b.add(id + ":(" + nql.JoinValues(values) + ")")
	}

	b.flush()

	if skipped > 0 {
		c.logger.Debug("skipped duplicate vertices", "element", element, "count", skipped)
	}

	return append(stmts, b.stmts...), nil
}

func (c *Compiler) compileEdges(
	m *mapping.GraphMapping,
	e *mapping.EdgeMapping,
	doc any,
	batchSize int,
) ([]string, error) {
	element := "edge " + e.EdgeName

	records, err := c.resolver.ArrayOrSingle(doc, e.SourcePath)
	if err != nil {
		return nil, &Error{Op: "resolve", Element: element, Path: e.SourcePath, Err: err}
	}

	names := nql.QuoteAll(mapping.PropertyNames(e.Properties), c.quote)
	b := newBatch("INSERT EDGE "+c.quote(e.EdgeName)+" ("+nql.JoinValues(names)+") VALUES ",
		batchSize, c.logger, element)

	for _, record := range records {
		src, err := vertexID(c.resolver, record, e.From.KeyPath, m.Settings.KeySeparator)
		if err != nil {
			return nil, inElement(err, element)
		}

		dst, err := vertexID(c.resolver, record, e.To.KeyPath, m.Settings.KeySeparator)
		if err != nil {
			return nil, inElement(err, element)
		}

		values, err := c.propertyValues(record, e.Properties, &m.Settings)
		if err != nil {
			return nil, inElement(err, element)
		}

		b.add(src + " -> " + dst + ":(" + nql.JoinValues(values) + ")")
	}

	b.flush()

	return b.stmts, nil
}

// propertyValues extracts and formats the declared properties of record.
func (c *Compiler) propertyValues(record any, props []mapping.Property, settings *mapping.Settings) ([]string, error) {
	values := make([]string, 0, len(props))

	for i := range props {
		v, err := c.ExtractValue(record, &props[i], settings)
		if err != nil {
			return nil, err
		}

		lit, err := FormatValue(v)
		if err != nil {
			return nil, &Error{Op: "format", Path: props[i].JSONPath, Err: err}
		}

		values = append(values, lit)
	}

	return values, nil
}

// dynamicValues returns the quoted names and literals of the record fields
// that are not declared properties, sorted by field name. Excluded fields,
// fields of a disallowed type, fields that hold no scalar and fields whose
// name contains a back-tick are skipped.
func (c *Compiler) dynamicValues(record any, v *mapping.VertexMapping) ([]string, []string) {
	fields, ok := record.(map[string]any)
	if !ok {
		return nil, nil
	}

	declared := declaredFields(v.Properties)

	var names, values []string

	for _, key := range common.SortedKeys(fields) {
		if _, ok := declared[key]; ok || v.DynamicFields.Excludes(key) {
			continue
		}

		if strings.Contains(key, "`") {
			c.logger.Debug("skipped dynamic field", "tag", v.TagName, "field", key)
			continue
		}

		typ := InferType(fields[key])
		if typ == "" || !v.DynamicFields.Allows(typ) {
			continue
		}

		tv, err := transform.FromDocument(fields[key])
		if err != nil {
			continue
		}

		lit, err := FormatValue(tv)
		if err != nil {
			continue
		}

		names = append(names, c.quote(key))
		values = append(values, lit)
	}

	return names, values
}

// declaredFields returns the property names together with the record keys
// the properties read from, so a renamed field is not emitted twice.
func declaredFields(props []mapping.Property) map[string]struct{} {
	declared := common.Set(mapping.PropertyNames(props)...)

	for i := range props {
		segments := document.ParsePath(props[i].JSONPath)
		if len(segments) > 0 && !segments[0].IsIndex {
			declared[segments[0].Key] = struct{}{}
		}
	}

	return declared
}

// batch accumulates rows and cuts them into statements of at most size rows.
type batch struct {
	header  string
	size    int
	rows    []string
	stmts   []string
	logger  *slog.Logger
	element string
}

func newBatch(header string, size int, logger *slog.Logger, element string) *batch {
	return &batch{header: header, size: size, logger: logger, element: element}
}

func (b *batch) add(row string) {
	b.rows = append(b.rows, row)
	if len(b.rows) >= b.size {
		b.flush()
	}
}

func (b *batch) flush() {
	if len(b.rows) == 0 {
		return
	}

	b.stmts = append(b.stmts, b.header+strings.Join(b.rows, ", ")+";")
	b.logger.Debug("flushed batch", "element", b.element, "rows", len(b.rows))
	b.rows = b.rows[:0]
}
