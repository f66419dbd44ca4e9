package query

import (
	"fmt"
	"strconv"
	"strings"
)

// AST for Participle Parser

type ASTSelect struct {
	SelectFields []*ASTSelectField `parser:"'SELECT' @@ (',' @@)*"`
	From         *ASTFromClause    `parser:"('FROM' @@)?"`
	Where        *ASTExpression    `parser:"('WHERE' @@)?"`
	GroupBy      *ASTColumn        `parser:"('GROUP' 'BY' @@)?"`
}

type ASTSelectField struct {
	Expression *ASTFieldExpr `parser:"@@"`
	Alias      string        `parser:"('AS' (@Ident | @QuotedIdent))?"`
}

type ASTFieldExpr struct {
	Star     bool         `parser:"  @'*'"`
	Function *ASTFunction `parser:"| @@"`
	Column   *ASTColumn   `parser:"| @@"`
}

type ASTFromClause struct {
	TableName *string    `parser:"(@Ident | @QuotedIdent | @String)"`
	SubQuery  *ASTSelect `parser:"| '(' @@ ')'"`
}

type ASTFunction struct {
	Name string      `parser:"@Ident '('"`
	Arg  *ASTFuncArg `parser:"@@ ')'"`
}

type ASTFuncArg struct {
	Star   bool       `parser:"  @'*'"`
	Column *ASTColumn `parser:"| @@"`
}

// ASTColumn is a column reference: a bare or back-quoted name, or #N for
// the 0-based position N.
type ASTColumn struct {
	Name     *string `parser:"  @(Ident | QuotedIdent)"`
	Position *string `parser:"| @Position"`
}

type ASTExpression struct {
	Or []*ASTOrCondition `parser:"@@ ('OR' @@)*"`
}

type ASTOrCondition struct {
	And []*ASTCondition `parser:"@@ ('AND' @@)*"`
}

type ASTCondition struct {
	Grouped *ASTExpression `parser:"  '(' @@ ')'"`
	Compare *ASTComparison `parser:"| @@"`
}

type ASTComparison struct {
	Column *ASTColumn  `parser:"@@"`
	Op     string      `parser:"@('=' | '!=' | '>=' | '<=' | '>' | '<' | 'CONTAINS')"`
	Value  *ASTOperand `parser:"@@"`
}

type ASTOperand struct {
	Literal *ASTLiteral `parser:"  @@"`
	Column  *ASTColumn  `parser:"| @@"`
}

type ASTLiteral struct {
	Number *float64 `parser:"  @Number"`
	StrVal *string  `parser:"| @String"`
	Bool   *string  `parser:"| @('TRUE' | 'FALSE')"`
}

// Helpers

func (s *ASTSelect) ToSelectQuery() (*SelectQuery, error) {
	sq := &SelectQuery{
		Fields: []Field{},
	}

	for _, f := range s.SelectFields {
		field, err := f.ToField()
		if err != nil {
			return nil, err
		}
		sq.Fields = append(sq.Fields, field)
	}

	if s.From != nil {
		if s.From.TableName != nil {
			sq.FromTable = *s.From.TableName
		} else if s.From.SubQuery != nil {
			sub, err := s.From.SubQuery.ToSelectQuery()
			if err != nil {
				return nil, err
			}
			sq.FromQuery = sub
		}
	}

	if s.GroupBy != nil {
		ref, err := s.GroupBy.Ref()
		if err != nil {
			return nil, err
		}
		sq.GroupBy = ref
	}

	if s.Where != nil {
		expr, err := s.Where.ToExpression()
		if err != nil {
			return nil, err
		}
		sq.Filter = expr
	}

	return sq, nil
}

func (f *ASTSelectField) ToField() (Field, error) {
	field := Field{Alias: f.Alias}
	e := f.Expression
	switch {
	case e.Star:
		if f.Alias != "" {
			return Field{}, fmt.Errorf("'*' cannot have an alias")
		}
		field.Star = true
	case e.Function != nil:
		field.Aggregate = strings.ToUpper(e.Function.Name)
		if !isAggregate(field.Aggregate) {
			return Field{}, fmt.Errorf("unknown function %s", e.Function.Name)
		}
		if e.Function.Arg.Star {
			if field.Aggregate != "COUNT" {
				return Field{}, fmt.Errorf("%s(*) is not supported", field.Aggregate)
			}
		} else {
			ref, err := e.Function.Arg.Column.Ref()
			if err != nil {
				return Field{}, err
			}
			field.Column = ref
		}
	case e.Column != nil:
		ref, err := e.Column.Ref()
		if err != nil {
			return Field{}, err
		}
		field.Column = ref
	}
	return field, nil
}

// Ref converts the column to a table column reference (string or int).
func (c *ASTColumn) Ref() (any, error) {
	if c.Name != nil {
		return *c.Name, nil
	}
	if c.Position != nil {
		pos, err := strconv.Atoi(strings.TrimPrefix(*c.Position, "#"))
		if err != nil {
			return nil, fmt.Errorf("invalid column position %s: %w", *c.Position, err)
		}
		return pos, nil
	}
	return nil, fmt.Errorf("empty column reference")
}

func (l *ASTLiteral) ToValue() interface{} {
	if l.Number != nil {
		return *l.Number
	}
	if l.StrVal != nil {
		return *l.StrVal
	}
	if l.Bool != nil {
		return strings.EqualFold(*l.Bool, "TRUE")
	}
	return nil
}

// Map AST to Expression interface

func (e *ASTExpression) ToExpression() (Expression, error) {
	if len(e.Or) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	expr, err := e.Or[0].ToExpression()
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(e.Or); i++ {
		right, err := e.Or[i].ToExpression()
		if err != nil {
			return nil, err
		}
		expr = &OrExpression{
			Left:  expr,
			Right: right,
		}
	}
	return expr, nil
}

func (o *ASTOrCondition) ToExpression() (Expression, error) {
	if len(o.And) == 0 {
		return nil, fmt.Errorf("empty condition")
	}
	expr, err := o.And[0].ToExpression()
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(o.And); i++ {
		right, err := o.And[i].ToExpression()
		if err != nil {
			return nil, err
		}
		expr = &AndExpression{
			Left:  expr,
			Right: right,
		}
	}
	return expr, nil
}

func (c *ASTCondition) ToExpression() (Expression, error) {
	if c.Grouped != nil {
		return c.Grouped.ToExpression()
	}
	left, err := c.Compare.Column.Ref()
	if err != nil {
		return nil, err
	}
	cond := &Condition{
		Column:   left,
		Operator: strings.ToLower(c.Compare.Op),
	}
	if c.Compare.Value.Column != nil {
		right, err := c.Compare.Value.Column.Ref()
		if err != nil {
			return nil, err
		}
		cond.Other = right
	} else {
		cond.Value = c.Compare.Value.Literal.ToValue()
	}
	return cond, nil
}
