package goparquet

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pqcore/parquet-core/parquet"
)

// ParseSchemaDefinition parses a Go-native struct-like schema DSL into a
// SchemaDescriptor, the same DSL surface cmd/parquet-inspect's schema
// command accepts via --definition, so a schema can be described without
// constructing parquet.SchemaElement trees by hand.
//
// Grammar (informal):
//
//	message   := "message" identifier "{" field* "}"
//	field     := repetition (group | leaf)
//	repetition := "required" | "optional" | "repeated"
//	group     := "group" identifier ["(" logical ")"] "{" field* "}"
//	leaf      := ptype identifier ["(" logical ")"] ["=" number] ";"
//	ptype     := "binary" | "float" | "double" | "boolean" | "int32"
//	           | "int64" | "int96" | "fixed_len_byte_array" "(" number ")"
//	logical   := "STRING" | "DATE" | "UUID" | "ENUM" | "JSON" | "BSON"
//	           | "DECIMAL" "(" number "," number ")"
//	           | "TIMESTAMP" "(" unit "," bool ")"
//	           | "TIME" "(" unit "," bool ")"
//	           | "INT" "(" number "," bool ")"
//	unit      := "MILLIS" | "MICROS" | "NANOS"
//
// Example:
//
//	message record {
//	  required int64 id;
//	  optional binary name (STRING);
//	  optional int64 created_at (TIMESTAMP(MICROS, true)) = 3;
//	}
func ParseSchemaDefinition(text string) (*SchemaDescriptor, error) {
	toks, err := lexSchemaDef(text)
	if err != nil {
		return nil, err
	}
	p := &schemaDefParser{toks: toks}
	root, err := p.parseMessage()
	if err != nil {
		return nil, err
	}
	var elements []*parquet.SchemaElement
	flattenSchemaDefNode(root, &elements)
	return NewSchemaDescriptor(elements)
}

// schemaDefNode is an intermediate parse tree node; flattenSchemaDefNode
// walks it into the preorder []*parquet.SchemaElement list NewSchemaDescriptor
// expects, the same shape a footer's Schema field has on the wire.
type schemaDefNode struct {
	element  *parquet.SchemaElement
	children []*schemaDefNode
	isGroup  bool // message root or "group" field, even when it has zero children
}

func flattenSchemaDefNode(n *schemaDefNode, out *[]*parquet.SchemaElement) {
	if n.isGroup {
		nc := int32(len(n.children))
		n.element.NumChildren = &nc
	}
	*out = append(*out, n.element)
	for _, c := range n.children {
		flattenSchemaDefNode(c, out)
	}
}

// --- lexer ---

type schemaDefTokKind int

const (
	tokEOF schemaDefTokKind = iota
	tokLeftBrace
	tokRightBrace
	tokLeftParen
	tokRightParen
	tokEqual
	tokComma
	tokSemicolon
	tokNumber
	tokIdentifier
	tokMessage
	tokGroup
	tokRepeated
	tokOptional
	tokRequired
)

type schemaDefTok struct {
	kind schemaDefTokKind
	val  string
	line int
}

var schemaDefKeywords = map[string]schemaDefTokKind{
	"message":  tokMessage,
	"group":    tokGroup,
	"repeated": tokRepeated,
	"optional": tokOptional,
	"required": tokRequired,
}

func (k schemaDefTokKind) String() string {
	switch k {
	case tokEOF:
		return "EOF"
	case tokLeftBrace:
		return "{"
	case tokRightBrace:
		return "}"
	case tokLeftParen:
		return "("
	case tokRightParen:
		return ")"
	case tokEqual:
		return "="
	case tokComma:
		return ","
	case tokSemicolon:
		return ";"
	case tokNumber:
		return "number"
	case tokIdentifier:
		return "identifier"
	case tokMessage:
		return "message"
	case tokGroup:
		return "group"
	case tokRepeated:
		return "repeated"
	case tokOptional:
		return "optional"
	case tokRequired:
		return "required"
	}
	return "?"
}

func lexSchemaDef(input string) ([]schemaDefTok, error) {
	var toks []schemaDefTok
	line := 1
	runes := []rune(input)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '\n':
			line++
			i++
		case unicode.IsSpace(r):
			i++
		case r == '{':
			toks = append(toks, schemaDefTok{tokLeftBrace, "{", line})
			i++
		case r == '}':
			toks = append(toks, schemaDefTok{tokRightBrace, "}", line})
			i++
		case r == '(':
			toks = append(toks, schemaDefTok{tokLeftParen, "(", line})
			i++
		case r == ')':
			toks = append(toks, schemaDefTok{tokRightParen, ")", line})
			i++
		case r == '=':
			toks = append(toks, schemaDefTok{tokEqual, "=", line})
			i++
		case r == ',':
			toks = append(toks, schemaDefTok{tokComma, ",", line})
			i++
		case r == ';':
			toks = append(toks, schemaDefTok{tokSemicolon, ";", line})
			i++
		case unicode.IsDigit(r):
			start := i
			for i < len(runes) && unicode.IsDigit(runes[i]) {
				i++
			}
			toks = append(toks, schemaDefTok{tokNumber, string(runes[start:i]), line})
		case r == '_' || unicode.IsLetter(r):
			start := i
			for i < len(runes) && (runes[i] == '_' || unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i])) {
				i++
			}
			word := string(runes[start:i])
			if kw, ok := schemaDefKeywords[word]; ok {
				toks = append(toks, schemaDefTok{kw, word, line})
			} else {
				toks = append(toks, schemaDefTok{tokIdentifier, word, line})
			}
		default:
			return nil, newError(InvalidParameter, "schema definition: line %d: unexpected character %q", line, r)
		}
	}
	toks = append(toks, schemaDefTok{tokEOF, "", line})
	return toks, nil
}

// --- parser ---

type schemaDefParser struct {
	toks []schemaDefTok
	pos  int
}

func (p *schemaDefParser) cur() schemaDefTok {
	return p.toks[p.pos]
}

func (p *schemaDefParser) advance() schemaDefTok {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *schemaDefParser) expect(kind schemaDefTokKind) (schemaDefTok, error) {
	t := p.cur()
	if t.kind != kind {
		return t, newError(InvalidParameter, "schema definition: line %d: expected %s, got %q", t.line, kind, t.val)
	}
	return p.advance(), nil
}

func (p *schemaDefParser) parseMessage() (*schemaDefNode, error) {
	if _, err := p.expect(tokMessage); err != nil {
		return nil, err
	}
	name, err := p.expect(tokIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLeftBrace); err != nil {
		return nil, err
	}
	children, err := p.parseFields()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRightBrace); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokEOF); err != nil {
		return nil, newError(InvalidParameter, "schema definition: unexpected trailing input near line %d", p.cur().line)
	}
	return &schemaDefNode{
		element:  &parquet.SchemaElement{Name: name.val},
		children: children,
		isGroup:  true,
	}, nil
}

func (p *schemaDefParser) parseFields() ([]*schemaDefNode, error) {
	var out []*schemaDefNode
	for p.cur().kind != tokRightBrace {
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		out = append(out, field)
	}
	return out, nil
}

func (p *schemaDefParser) parseField() (*schemaDefNode, error) {
	rep, err := p.parseRepetition()
	if err != nil {
		return nil, err
	}

	if p.cur().kind == tokGroup {
		return p.parseGroup(rep)
	}
	return p.parseLeaf(rep)
}

func (p *schemaDefParser) parseRepetition() (parquet.FieldRepetitionType, error) {
	t := p.cur()
	switch t.kind {
	case tokRequired:
		p.advance()
		return parquet.FieldRepetitionType_REQUIRED, nil
	case tokOptional:
		p.advance()
		return parquet.FieldRepetitionType_OPTIONAL, nil
	case tokRepeated:
		p.advance()
		return parquet.FieldRepetitionType_REPEATED, nil
	default:
		return 0, newError(InvalidParameter, "schema definition: line %d: expected required/optional/repeated, got %q", t.line, t.val)
	}
}

func (p *schemaDefParser) parseGroup(rep parquet.FieldRepetitionType) (*schemaDefNode, error) {
	p.advance() // "group"
	name, err := p.expect(tokIdentifier)
	if err != nil {
		return nil, err
	}
	el := &parquet.SchemaElement{Name: name.val, RepetitionType: &rep}
	if p.cur().kind == tokLeftParen {
		lt, ct, err := p.parseLogicalAnnotation()
		if err != nil {
			return nil, err
		}
		el.LogicalType, el.ConvertedType = lt, ct
	}
	if _, err := p.expect(tokLeftBrace); err != nil {
		return nil, err
	}
	children, err := p.parseFields()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRightBrace); err != nil {
		return nil, err
	}
	return &schemaDefNode{element: el, children: children, isGroup: true}, nil
}

var schemaDefPhysicalTypes = map[string]parquet.Type{
	"binary":               parquet.Type_BYTE_ARRAY,
	"float":                parquet.Type_FLOAT,
	"double":               parquet.Type_DOUBLE,
	"boolean":              parquet.Type_BOOLEAN,
	"int32":                parquet.Type_INT32,
	"int64":                parquet.Type_INT64,
	"int96":                parquet.Type_INT96,
	"fixed_len_byte_array": parquet.Type_FIXED_LEN_BYTE_ARRAY,
}

func (p *schemaDefParser) parseLeaf(rep parquet.FieldRepetitionType) (*schemaDefNode, error) {
	typeTok, err := p.expect(tokIdentifier)
	if err != nil {
		return nil, err
	}
	pt, ok := schemaDefPhysicalTypes[typeTok.val]
	if !ok {
		return nil, newError(InvalidParameter, "schema definition: line %d: unknown type %q", typeTok.line, typeTok.val)
	}
	el := &parquet.SchemaElement{Type: &pt, RepetitionType: &rep}

	if pt == parquet.Type_FIXED_LEN_BYTE_ARRAY {
		if _, err := p.expect(tokLeftParen); err != nil {
			return nil, err
		}
		lenTok, err := p.expect(tokNumber)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(lenTok.val, 10, 32)
		if err != nil {
			return nil, newError(InvalidParameter, "schema definition: line %d: invalid fixed_len_byte_array length %q", lenTok.line, lenTok.val)
		}
		l := int32(n)
		el.TypeLength = &l
		if _, err := p.expect(tokRightParen); err != nil {
			return nil, err
		}
	}

	name, err := p.expect(tokIdentifier)
	if err != nil {
		return nil, err
	}
	el.Name = name.val

	if p.cur().kind == tokLeftParen {
		lt, ct, err := p.parseLogicalAnnotation()
		if err != nil {
			return nil, err
		}
		el.LogicalType, el.ConvertedType = lt, ct
		if lt != nil && lt.DECIMAL != nil {
			el.Scale, el.Precision = &lt.DECIMAL.Scale, &lt.DECIMAL.Precision
		}
	}

	if p.cur().kind == tokEqual {
		p.advance()
		idTok, err := p.expect(tokNumber)
		if err != nil {
			return nil, err
		}
		id, err := strconv.ParseInt(idTok.val, 10, 32)
		if err != nil {
			return nil, newError(InvalidParameter, "schema definition: line %d: invalid field id %q", idTok.line, idTok.val)
		}
		fid := int32(id)
		el.FieldID = &fid
	}

	if _, err := p.expect(tokSemicolon); err != nil {
		return nil, err
	}

	return &schemaDefNode{element: el}, nil
}

// namedConvertedTypes maps the DSL's bare, argument-less annotations to the
// legacy ConvertedType a reader without LogicalType support would still
// understand.
var namedConvertedTypes = map[string]parquet.ConvertedType{
	"UTF8":          parquet.ConvertedType_UTF8,
	"MAP":           parquet.ConvertedType_MAP,
	"MAP_KEY_VALUE": parquet.ConvertedType_MAP_KEY_VALUE,
	"LIST":          parquet.ConvertedType_LIST,
	"ENUM":          parquet.ConvertedType_ENUM,
	"DATE":          parquet.ConvertedType_DATE,
	"JSON":          parquet.ConvertedType_JSON,
	"BSON":          parquet.ConvertedType_BSON,
	"INTERVAL":      parquet.ConvertedType_INTERVAL,
}

func convertedTypePtr(c parquet.ConvertedType) *parquet.ConvertedType { return &c }

// parseLogicalAnnotation parses the "(" NAME [args] ")" suffix on a leaf or
// group and returns a LogicalType plus the ConvertedType a pre-LogicalType
// reader would see for the same annotation, matching how the format defines
// LogicalType as a refinement of the older ConvertedType enum.
func (p *schemaDefParser) parseLogicalAnnotation() (*parquet.LogicalType, *parquet.ConvertedType, error) {
	if _, err := p.expect(tokLeftParen); err != nil {
		return nil, nil, err
	}
	nameTok, err := p.expect(tokIdentifier)
	if err != nil {
		return nil, nil, err
	}
	name := strings.ToUpper(nameTok.val)

	lt := &parquet.LogicalType{}
	var ct *parquet.ConvertedType

	switch name {
	case "STRING":
		lt.STRING = &parquet.StringType{}
		ct = convertedTypePtr(parquet.ConvertedType_UTF8)
	case "DATE":
		lt.DATE = &parquet.DateType{}
		ct = convertedTypePtr(parquet.ConvertedType_DATE)
	case "UUID":
		lt.UUID = &parquet.UUIDType{}
	case "ENUM":
		lt.ENUM = &parquet.EnumType{}
		ct = convertedTypePtr(parquet.ConvertedType_ENUM)
	case "JSON":
		lt.JSON = &parquet.JsonType{}
		ct = convertedTypePtr(parquet.ConvertedType_JSON)
	case "BSON":
		lt.BSON = &parquet.BsonType{}
		ct = convertedTypePtr(parquet.ConvertedType_BSON)
	case "DECIMAL":
		if _, err := p.expect(tokLeftParen); err != nil {
			return nil, nil, err
		}
		precTok, err := p.expect(tokNumber)
		if err != nil {
			return nil, nil, err
		}
		prec, _ := strconv.ParseInt(precTok.val, 10, 32)
		if _, err := p.expect(tokComma); err != nil {
			return nil, nil, err
		}
		scaleTok, err := p.expect(tokNumber)
		if err != nil {
			return nil, nil, err
		}
		scale, _ := strconv.ParseInt(scaleTok.val, 10, 32)
		if _, err := p.expect(tokRightParen); err != nil {
			return nil, nil, err
		}
		lt.DECIMAL = &parquet.DecimalType{Precision: int32(prec), Scale: int32(scale)}
		ct = convertedTypePtr(parquet.ConvertedType_DECIMAL)
	case "TIMESTAMP", "TIME":
		if _, err := p.expect(tokLeftParen); err != nil {
			return nil, nil, err
		}
		unitTok, err := p.expect(tokIdentifier)
		if err != nil {
			return nil, nil, err
		}
		var unit parquet.TimeUnit
		switch unitTok.val {
		case "MILLIS":
			unit = parquet.TimeUnit_MILLIS
		case "MICROS":
			unit = parquet.TimeUnit_MICROS
		case "NANOS":
			unit = parquet.TimeUnit_NANOS
		default:
			return nil, nil, newError(InvalidParameter, "schema definition: line %d: unknown time unit %q", unitTok.line, unitTok.val)
		}
		if _, err := p.expect(tokComma); err != nil {
			return nil, nil, err
		}
		boolTok, err := p.expect(tokIdentifier)
		if err != nil {
			return nil, nil, err
		}
		adjusted, err := strconv.ParseBool(boolTok.val)
		if err != nil {
			return nil, nil, newError(InvalidParameter, "schema definition: line %d: invalid isAdjustedToUTC %q", boolTok.line, boolTok.val)
		}
		if _, err := p.expect(tokRightParen); err != nil {
			return nil, nil, err
		}
		if name == "TIMESTAMP" {
			lt.TIMESTAMP = &parquet.TimestampType{IsAdjustedToUTC: adjusted, Unit: unit}
			switch unit {
			case parquet.TimeUnit_MILLIS:
				ct = convertedTypePtr(parquet.ConvertedType_TIMESTAMP_MILLIS)
			case parquet.TimeUnit_MICROS:
				ct = convertedTypePtr(parquet.ConvertedType_TIMESTAMP_MICROS)
			}
		} else {
			lt.TIME = &parquet.TimeType{IsAdjustedToUTC: adjusted, Unit: unit}
			switch unit {
			case parquet.TimeUnit_MILLIS:
				ct = convertedTypePtr(parquet.ConvertedType_TIME_MILLIS)
			case parquet.TimeUnit_MICROS:
				ct = convertedTypePtr(parquet.ConvertedType_TIME_MICROS)
			}
		}
	case "INT":
		if _, err := p.expect(tokLeftParen); err != nil {
			return nil, nil, err
		}
		bwTok, err := p.expect(tokNumber)
		if err != nil {
			return nil, nil, err
		}
		bitWidth, _ := strconv.ParseInt(bwTok.val, 10, 32)
		if _, err := p.expect(tokComma); err != nil {
			return nil, nil, err
		}
		signedTok, err := p.expect(tokIdentifier)
		if err != nil {
			return nil, nil, err
		}
		signed, err := strconv.ParseBool(signedTok.val)
		if err != nil {
			return nil, nil, newError(InvalidParameter, "schema definition: line %d: invalid isSigned %q", signedTok.line, signedTok.val)
		}
		if _, err := p.expect(tokRightParen); err != nil {
			return nil, nil, err
		}
		lt.INTEGER = &parquet.IntType{BitWidth: int8(bitWidth), IsSigned: signed}
		conv, err := convertedTypeForInt(bitWidth, signed)
		if err != nil {
			return nil, nil, newError(InvalidParameter, "schema definition: line %d: INT(%d,%t) has no matching converted type", bwTok.line, bitWidth, signed)
		}
		ct = convertedTypePtr(conv)
	default:
		conv, ok := namedConvertedTypes[name]
		if !ok {
			return nil, nil, newError(InvalidParameter, "schema definition: line %d: unsupported logical or converted type %q", nameTok.line, nameTok.val)
		}
		lt = nil
		ct = convertedTypePtr(conv)
	}

	if _, err := p.expect(tokRightParen); err != nil {
		return nil, nil, err
	}
	return lt, ct, nil
}

func convertedTypeForInt(bitWidth int64, signed bool) (parquet.ConvertedType, error) {
	switch {
	case signed && bitWidth == 8:
		return parquet.ConvertedType_INT_8, nil
	case signed && bitWidth == 16:
		return parquet.ConvertedType_INT_16, nil
	case signed && bitWidth == 32:
		return parquet.ConvertedType_INT_32, nil
	case signed && bitWidth == 64:
		return parquet.ConvertedType_INT_64, nil
	case !signed && bitWidth == 8:
		return parquet.ConvertedType_UINT_8, nil
	case !signed && bitWidth == 16:
		return parquet.ConvertedType_UINT_16, nil
	case !signed && bitWidth == 32:
		return parquet.ConvertedType_UINT_32, nil
	case !signed && bitWidth == 64:
		return parquet.ConvertedType_UINT_64, nil
	default:
		return 0, newError(InvalidParameter, "unsupported INT bit width %d", bitWidth)
	}
}
