// Package gen emits Go source files with precompiled replacement functions.
// The replacement template is parsed at generation time and its segments are
// inlined into the emitted function body, so the generated code performs no
// template parsing at run time.
package gen

import (
	"fmt"
	"regexp"

	"github.com/dave/jennifer/jen"

	"github.com/KromDaniel/resub/template"
)

// Config holds the configuration for code generation.
type Config struct {
	// Pattern is the regular expression the replacers match.
	Pattern string
	// Name is the prefix for generated identifiers (e.g. "Email" generates
	// EmailReplaceAll0). Must be a valid exported identifier.
	Name string
	// Package is the Go package name for the generated file.
	Package string
	// Templates are the replacement templates; one ReplaceAll function is
	// generated per template, numbered by position.
	Templates []string
	// OutputFile is the path the generated code is written to.
	OutputFile string
	// Verbose enables generation logging to stderr.
	Verbose bool
}

// Generator emits precompiled replacer functions for one pattern.
type Generator struct {
	config Config
	file   *jen.File
	logger *Logger
	re     *regexp.Regexp
	tmpls  []*template.Template
}

// New creates a generator for the given config.
func New(config Config) *Generator {
	return &Generator{
		config: config,
		file:   jen.NewFile(config.Package),
		logger: NewLogger(config.Verbose),
	}
}

// Generate validates the config, builds the output file, and saves it.
func (g *Generator) Generate() error {
	if err := g.validate(); err != nil {
		return err
	}

	g.file.HeaderComment("Code generated by resub gen. DO NOT EDIT.")
	g.file.HeaderComment(fmt.Sprintf("Pattern: %s", g.config.Pattern))

	g.generatePatternVar()
	g.generateGroupHelper()
	for i, tmpl := range g.tmpls {
		g.logger.Log("Generating %sReplaceAll%d for template %q", g.config.Name, i, tmpl.Original)
		g.generateReplaceAll(i, tmpl)
	}

	if err := g.file.Save(g.config.OutputFile); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	g.logger.Log("Wrote %s", g.config.OutputFile)
	return nil
}

// validate compiles the pattern and all templates, and checks every
// backreference against the pattern's capture-group count.
func (g *Generator) validate() error {
	if !validExportedName(g.config.Name) {
		return fmt.Errorf("name %q is not a valid exported identifier", g.config.Name)
	}
	if g.config.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if g.config.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if len(g.config.Templates) == 0 {
		return fmt.Errorf("at least one template is required")
	}

	re, err := regexp.Compile(g.config.Pattern)
	if err != nil {
		return fmt.Errorf("failed to compile pattern: %w", err)
	}
	g.re = re
	g.logger.Log("Pattern %q has %d capture group(s)", g.config.Pattern, re.NumSubexp())

	g.tmpls = make([]*template.Template, 0, len(g.config.Templates))
	for i, raw := range g.config.Templates {
		tmpl, err := template.Parse(raw)
		if err != nil {
			return fmt.Errorf("template %d: %w", i, err)
		}
		if max := tmpl.MaxBackref(); max > re.NumSubexp() {
			return fmt.Errorf("template %d references group $%d but pattern has %d capture group(s)",
				i, max, re.NumSubexp())
		}
		g.tmpls = append(g.tmpls, tmpl)
	}
	return nil
}

// patternVarName is the identifier of the generated package-level pattern.
func (g *Generator) patternVarName() string {
	return LowerFirst(g.config.Name) + "Pattern"
}

// groupFuncName is the identifier of the generated capture accessor.
func (g *Generator) groupFuncName() string {
	return LowerFirst(g.config.Name) + "Group"
}

// generatePatternVar emits the compiled package-level pattern variable.
func (g *Generator) generatePatternVar() {
	g.file.Commentf("%s is the compiled pattern for the %s replacers.", g.patternVarName(), g.config.Name)
	g.file.Var().Id(g.patternVarName()).Op("=").
		Qual("regexp", "MustCompile").Call(jen.Lit(g.config.Pattern))
	g.file.Line()
}

// generateGroupHelper emits a helper translating submatch index pairs into
// capture text, with non-participating groups rendered as empty strings.
func (g *Generator) generateGroupHelper() {
	g.file.Commentf("%s returns capture group grp of the match m found at base in input.", g.groupFuncName())
	g.file.Func().Id(g.groupFuncName()).
		Params(
			jen.Id("input").String(),
			jen.Id("base").Int(),
			jen.Id("m").Index().Int(),
			jen.Id("grp").Int(),
		).
		Params(jen.String()).
		Block(
			jen.List(jen.Id("lo"), jen.Id("hi")).Op(":=").
				List(jen.Id("m").Index(jen.Lit(2).Op("*").Id("grp")), jen.Id("m").Index(jen.Lit(2).Op("*").Id("grp").Op("+").Lit(1))),
			jen.If(jen.Id("lo").Op("<").Lit(0)).Block(
				jen.Return(jen.Lit("")),
			),
			jen.Return(jen.Id("input").Index(jen.Id("base").Op("+").Id("lo"), jen.Id("base").Op("+").Id("hi"))),
		)
	g.file.Line()
}

// generateReplaceAll emits one ReplaceAll function with the template's
// segments inlined as WriteString calls.
func (g *Generator) generateReplaceAll(idx int, tmpl *template.Template) {
	funcName := fmt.Sprintf("%sReplaceAll%d", g.config.Name, idx)

	renderCalls := make([]jen.Code, 0, len(tmpl.Segments))
	for _, seg := range tmpl.Segments {
		switch seg.Type {
		case template.SegmentLiteral:
			renderCalls = append(renderCalls,
				jen.Id("b").Dot("WriteString").Call(jen.Lit(seg.Literal)))
		case template.SegmentBackref:
			renderCalls = append(renderCalls,
				jen.Id("b").Dot("WriteString").Call(
					jen.Id(g.groupFuncName()).Call(
						jen.Id("input"),
						jen.Id("searchPos"),
						jen.Id("m"),
						jen.Lit(seg.Backref+1),
					)))
		}
	}

	g.file.Commentf("%s replaces every match with the expansion of %q.", funcName, tmpl.Original)
	g.file.Func().Id(funcName).
		Params(jen.Id("input").String()).
		Params(jen.String()).
		Block(
			jen.Var().Id("b").Qual("strings", "Builder"),
			jen.Id("searchPos").Op(":=").Lit(0),
			jen.Id("lastMatchEnd").Op(":=").Lit(0),
			jen.Line(),
			jen.For(jen.Id("searchPos").Op("<=").Len(jen.Id("input"))).Block(
				jen.Id("m").Op(":=").Id(g.patternVarName()).Dot("FindStringSubmatchIndex").
					Call(jen.Id("input").Index(jen.Id("searchPos"), jen.Empty())),
				jen.If(jen.Id("m").Op("==").Nil()).Block(
					jen.Break(),
				),
				jen.Id("start").Op(":=").Id("searchPos").Op("+").Id("m").Index(jen.Lit(0)),
				jen.Id("end").Op(":=").Id("searchPos").Op("+").Id("m").Index(jen.Lit(1)),
				jen.Id("b").Dot("WriteString").Call(jen.Id("input").Index(jen.Id("lastMatchEnd"), jen.Id("start"))),
				jen.Line(),
				jen.Comment("Skip an empty match directly after the previous match."),
				jen.If(jen.Id("end").Op(">").Id("lastMatchEnd").Op("||").Id("start").Op("==").Lit(0)).Block(
					renderCalls...,
				),
				jen.Id("lastMatchEnd").Op("=").Id("end"),
				jen.Line(),
				jen.List(jen.Id("_"), jen.Id("width")).Op(":=").
					Qual("unicode/utf8", "DecodeRuneInString").Call(jen.Id("input").Index(jen.Id("searchPos"), jen.Empty())),
				jen.Switch().Block(
					jen.Case(jen.Id("searchPos").Op("+").Id("width").Op(">").Id("end")).Block(
						jen.Id("searchPos").Op("+=").Id("width"),
					),
					jen.Case(jen.Id("searchPos").Op("+").Lit(1).Op(">").Id("end")).Block(
						jen.Id("searchPos").Op("++"),
					),
					jen.Default().Block(
						jen.Id("searchPos").Op("=").Id("end"),
					),
				),
			),
			jen.Line(),
			jen.Id("b").Dot("WriteString").Call(jen.Id("input").Index(jen.Id("lastMatchEnd"), jen.Empty())),
			jen.Return(jen.Id("b").Dot("String").Call()),
		)
	g.file.Line()
}
