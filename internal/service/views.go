package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/sync/errgroup"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
	"github.com/maf-y/ArardaHospital-Frontend/internal/ports"
	"github.com/maf-y/ArardaHospital-Frontend/internal/util"
)

// ErrUnknownView is returned for a view name that was never registered.
var ErrUnknownView = errors.New("unknown view")

// Format selects how a field value is rendered.
type Format string

const (
	FormatText  Format = ""
	FormatDate  Format = "date"
	FormatBadge Format = "badge"
	FormatCount Format = "count"
	FormatImage Format = "image"
)

const (
	defaultIDExpr    = "_id || id"
	defaultItemsExpr = "data || @"
	placeholderID    = "{id}"
	placeholderUser  = "{user}"
	placeholderRef   = "{ref}"
)

// Field maps one value out of a backend document.
type Field struct {
	Key    string
	Label  string
	Expr   string
	Format Format
}

// Action is a link or button rendered next to a row or on a detail page.
// Href may contain {id}, {user}, and {ref}; an action whose {ref} cannot be filled is hidden.
type Action struct {
	Label  string
	Href   string
	Method string
	Style  string
}

// Filter is a query parameter the user can set on a list.
// Options renders a select; no options renders a search box.
type Filter struct {
	Param   string
	Label   string
	Options []string
}

// Section is a secondary list loaded alongside a detail document.
type Section struct {
	Name      string
	Title     string
	Path      string
	ItemsExpr string
	Fields    []Field
	Empty     string
}

// DetailSource describes a single-document view.
type DetailSource struct {
	Path string
	// RootExpr selects the document inside the response. Defaults to "data || @".
	RootExpr string
	// RefExpr extracts the value substituted for {ref} in section paths and actions.
	RefExpr  string
	Fields   []Field
	Sections []Section
	Actions  []Action
}

// ViewSource declares one backend-backed view: where the data lives and which of its
// fields the portal shows.
type ViewSource struct {
	Name  string
	Title string
	// Path is relative to the hospital API and may contain {id} and {user}.
	Path string
	// Query lists request parameters forwarded to the backend.
	Query []string
	// RequireParam, when set, skips the backend call until the user supplies it.
	RequireParam string
	// LocalSearch filters fetched rows by a case-insensitive match on this parameter.
	LocalSearch string

	ItemsExpr string
	IDExpr    string
	TotalExpr string
	PagesExpr string
	Fields    []Field
	RowLink   string
	Actions   []Action
	Filters   []Filter
	Empty     string

	Detail *DetailSource
}

// ViewRequest carries the per-request inputs of a view.
type ViewRequest struct {
	Credential domainauth.Credential
	UserID     string
	ID         string
	Query      url.Values
}

// Cell is a rendered field value.
type Cell struct {
	Key    string
	Label  string
	Value  string
	Format Format
}

// Link is a resolved action.
type Link struct {
	Label  string
	Href   string
	Method string
	Style  string
}

// Row is one list entry.
type Row struct {
	ID      string
	Link    string
	Cells   []Cell
	Actions []Link
}

// Column is a list header.
type Column struct {
	Key   string
	Label string
}

// ListView is a rendered list.
type ListView struct {
	Name     string
	Title    string
	Columns  []Column
	Rows     []Row
	Filters  []Filter
	Query    url.Values
	Total    int
	Pages    int
	Empty    string
	Prompted bool
}

// SectionView is a rendered detail section. Err is set when the section failed to load;
// the rest of the page still renders.
type SectionView struct {
	Name    string
	Title   string
	Columns []Column
	Rows    []Row
	Empty   string
	Err     string
}

// DetailView is a rendered single document.
type DetailView struct {
	Name     string
	Title    string
	ID       string
	Ref      string
	Fields   []Cell
	Sections []SectionView
	Actions  []Link
	Raw      any
}

// Field returns the value of the field with key, or "" when absent.
func (d *DetailView) Field(key string) string {
	for _, c := range d.Fields {
		if c.Key == key && c.Value != util.Placeholder {
			return c.Value
		}
	}
	return ""
}

// ViewServiceOptions groups dependencies for ViewService.
type ViewServiceOptions struct {
	Clinical ports.Clinical
	Sources  []ViewSource
	Logger   *slog.Logger
}

type compiledField struct {
	Field
	expr jmespath.JMESPath
}

type compiledSection struct {
	Section
	items  jmespath.JMESPath
	fields []compiledField
}

type compiledSource struct {
	ViewSource
	items, id, total, pages jmespath.JMESPath
	fields                  []compiledField

	root, ref    jmespath.JMESPath
	detailFields []compiledField
	sections     []compiledSection
}

// ViewService renders list and detail views from declarative sources.
type ViewService struct {
	clinical ports.Clinical
	sources  map[string]*compiledSource
	logger   *slog.Logger
}

// NewViewService compiles every source's expressions. An invalid expression or a
// duplicate name is a construction error.
func NewViewService(opts ViewServiceOptions) (*ViewService, error) {
	if opts.Clinical == nil {
		panic("ViewService requires a Clinical port")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &ViewService{
		clinical: opts.Clinical,
		sources:  make(map[string]*compiledSource, len(opts.Sources)),
		logger:   logger.With("component", "view_service"),
	}
	for _, src := range opts.Sources {
		if src.Name == "" {
			return nil, errors.New("view source without a name")
		}
		if _, dup := s.sources[src.Name]; dup {
			return nil, fmt.Errorf("view %q registered twice", src.Name)
		}
		cs, err := compileSource(src)
		if err != nil {
			return nil, fmt.Errorf("view %q: %w", src.Name, err)
		}
		s.sources[src.Name] = cs
	}
	return s, nil
}

// Source returns the registered source called name.
func (s *ViewService) Source(name string) (ViewSource, bool) {
	cs, ok := s.sources[name]
	if !ok {
		return ViewSource{}, false
	}
	return cs.ViewSource, true
}

// List fetches and renders the list view called name.
func (s *ViewService) List(ctx context.Context, name string, req ViewRequest) (*ListView, error) {
	cs, ok := s.sources[name]
	if !ok {
		return nil, fmt.Errorf("list %q: %w", name, ErrUnknownView)
	}

	view := &ListView{
		Name:    cs.Name,
		Title:   cs.Title,
		Columns: columns(cs.fields),
		Filters: cs.Filters,
		Query:   forwarded(req.Query, cs.Query, cs.LocalSearch),
		Empty:   cs.Empty,
	}
	if cs.RequireParam != "" && strings.TrimSpace(req.Query.Get(cs.RequireParam)) == "" {
		view.Prompted = true
		return view, nil
	}

	path, err := fillPath(cs.Path, req, "")
	if err != nil {
		return nil, err
	}
	doc, err := s.clinical.Fetch(ctx, req.Credential, path, forwarded(req.Query, cs.Query))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", cs.Name, err)
	}

	items := asItems(search(cs.items, doc))
	rows := buildRows(rowSpec{fields: cs.fields, id: cs.id, link: cs.RowLink, actions: cs.Actions}, items, req)
	if cs.LocalSearch != "" {
		rows = filterRows(rows, req.Query.Get(cs.LocalSearch))
	}
	view.Rows = rows
	view.Total = intValue(search(cs.total, doc), len(rows))
	view.Pages = intValue(search(cs.pages, doc), 1)
	return view, nil
}

// Detail fetches and renders the detail view called name. Sections are loaded in
// parallel once the main document is known; a failed section only marks itself.
func (s *ViewService) Detail(ctx context.Context, name string, req ViewRequest) (*DetailView, error) {
	cs, ok := s.sources[name]
	if !ok || cs.Detail == nil {
		return nil, fmt.Errorf("detail %q: %w", name, ErrUnknownView)
	}

	path, err := fillPath(cs.Detail.Path, req, "")
	if err != nil {
		return nil, err
	}
	doc, err := s.clinical.Fetch(ctx, req.Credential, path, nil)
	if err != nil {
		return nil, fmt.Errorf("detail %s: %w", cs.Name, err)
	}
	root := search(cs.root, doc)
	if root == nil {
		return nil, apperrors.NotFound("The requested record was not found.")
	}

	ref := util.DisplayValue(search(cs.ref, root))
	if ref == util.Placeholder {
		ref = ""
	}

	view := &DetailView{
		Name:    cs.Name,
		Title:   cs.Title,
		ID:      req.ID,
		Ref:     ref,
		Fields:  cells(cs.detailFields, root),
		Actions: links(cs.Detail.Actions, linkVars{id: req.ID, user: req.UserID, ref: ref}),
		Raw:     root,
	}
	view.Sections = s.loadSections(ctx, cs, req, ref)
	return view, nil
}

func (s *ViewService) loadSections(ctx context.Context, cs *compiledSource, req ViewRequest, ref string) []SectionView {
	if len(cs.sections) == 0 {
		return nil
	}
	out := make([]SectionView, len(cs.sections))
	g, gctx := errgroup.WithContext(ctx)
	for i := range cs.sections {
		sec := cs.sections[i]
		out[i] = SectionView{Name: sec.Name, Title: sec.Title, Columns: columns(sec.fields), Empty: sec.Empty}

		path, err := fillPath(sec.Path, req, ref)
		if err != nil {
			out[i].Err = apperrors.UserMessage(err)
			continue
		}
		g.Go(func() error {
			doc, fetchErr := s.clinical.Fetch(gctx, req.Credential, path, nil)
			if fetchErr != nil {
				s.logger.DebugContext(gctx, "section load failed", "view", cs.Name, "section", sec.Name, "error", fetchErr)
				out[i].Err = apperrors.UserMessage(fetchErr)
				return nil
			}
			items := asItems(search(sec.items, doc))
			out[i].Rows = buildRows(rowSpec{fields: sec.fields}, items, req)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func compileSource(src ViewSource) (*compiledSource, error) {
	cs := &compiledSource{ViewSource: src}
	var err error
	if cs.items, err = compile(src.ItemsExpr, defaultItemsExpr); err != nil {
		return nil, err
	}
	if cs.id, err = compile(src.IDExpr, defaultIDExpr); err != nil {
		return nil, err
	}
	if cs.total, err = compile(src.TotalExpr, ""); err != nil {
		return nil, err
	}
	if cs.pages, err = compile(src.PagesExpr, ""); err != nil {
		return nil, err
	}
	if cs.fields, err = compileFields(src.Fields); err != nil {
		return nil, err
	}
	if src.Detail == nil {
		return cs, nil
	}

	if cs.root, err = compile(src.Detail.RootExpr, defaultItemsExpr); err != nil {
		return nil, err
	}
	if cs.ref, err = compile(src.Detail.RefExpr, ""); err != nil {
		return nil, err
	}
	if cs.detailFields, err = compileFields(src.Detail.Fields); err != nil {
		return nil, err
	}
	for _, sec := range src.Detail.Sections {
		items, compileErr := compile(sec.ItemsExpr, defaultItemsExpr)
		if compileErr != nil {
			return nil, fmt.Errorf("section %s: %w", sec.Name, compileErr)
		}
		fields, compileErr := compileFields(sec.Fields)
		if compileErr != nil {
			return nil, fmt.Errorf("section %s: %w", sec.Name, compileErr)
		}
		cs.sections = append(cs.sections, compiledSection{Section: sec, items: items, fields: fields})
	}
	return cs, nil
}

func compile(expr, fallback string) (jmespath.JMESPath, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		expr = fallback
	}
	if expr == "" {
		return nil, nil
	}
	compiled, err := jmespath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, err)
	}
	return compiled, nil
}

func compileFields(fields []Field) ([]compiledField, error) {
	out := make([]compiledField, 0, len(fields))
	for _, f := range fields {
		expr := f.Expr
		if expr == "" {
			expr = f.Key
		}
		compiled, err := compile(expr, "")
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Key, err)
		}
		out = append(out, compiledField{Field: f, expr: compiled})
	}
	return out, nil
}

func search(expr jmespath.JMESPath, doc any) any {
	if expr == nil || doc == nil {
		return nil
	}
	v, err := expr.Search(doc)
	if err != nil {
		return nil
	}
	return v
}

// asItems normalises a search result into a list: a single object becomes one row.
func asItems(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		return []any{t}
	default:
		return nil
	}
}

type rowSpec struct {
	fields  []compiledField
	id      jmespath.JMESPath
	link    string
	actions []Action
}

func buildRows(spec rowSpec, items []any, req ViewRequest) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		row := Row{Cells: cells(spec.fields, item)}
		if id := util.DisplayValue(search(spec.id, item)); id != util.Placeholder {
			row.ID = id
		}
		vars := linkVars{id: row.ID, user: req.UserID}
		if spec.link != "" && row.ID != "" {
			row.Link = vars.fill(spec.link)
		}
		row.Actions = links(spec.actions, vars)
		rows = append(rows, row)
	}
	return rows
}

func cells(fields []compiledField, item any) []Cell {
	out := make([]Cell, 0, len(fields))
	for _, f := range fields {
		out = append(out, Cell{Key: f.Key, Label: f.Label, Value: render(f.Format, search(f.expr, item)), Format: f.Format})
	}
	return out
}

func render(format Format, v any) string {
	switch format {
	case FormatDate:
		return util.FormatDate(v)
	case FormatCount:
		return util.Count(v)
	default:
		return util.DisplayValue(v)
	}
}

func columns(fields []compiledField) []Column {
	out := make([]Column, 0, len(fields))
	for _, f := range fields {
		out = append(out, Column{Key: f.Key, Label: f.Label})
	}
	return out
}

type linkVars struct {
	id, user, ref string
}

func (v linkVars) fill(tmpl string) string {
	return strings.NewReplacer(
		placeholderID, url.PathEscape(v.id),
		placeholderUser, url.PathEscape(v.user),
		placeholderRef, url.QueryEscape(v.ref),
	).Replace(tmpl)
}

func links(actions []Action, vars linkVars) []Link {
	out := make([]Link, 0, len(actions))
	for _, a := range actions {
		if strings.Contains(a.Href, placeholderRef) && vars.ref == "" {
			continue
		}
		if strings.Contains(a.Href, placeholderID) && vars.id == "" {
			continue
		}
		out = append(out, Link{Label: a.Label, Href: vars.fill(a.Href), Method: a.Method, Style: a.Style})
	}
	return out
}

// fillPath substitutes placeholders in a backend path. Missing values are a
// validation error rather than a request to a malformed URL.
func fillPath(tmpl string, req ViewRequest, ref string) (string, error) {
	pairs := []struct {
		placeholder, value, message string
	}{
		{placeholderID, req.ID, "The record identifier is missing."},
		{placeholderUser, req.UserID, "Your account has no user identifier."},
		{placeholderRef, ref, "There is no current visit for this patient."},
	}
	out := tmpl
	for _, p := range pairs {
		if !strings.Contains(out, p.placeholder) {
			continue
		}
		v := strings.TrimSpace(p.value)
		if v == "" {
			return "", apperrors.Validation(p.message)
		}
		out = strings.ReplaceAll(out, p.placeholder, url.PathEscape(v))
	}
	return out, nil
}

// forwarded copies the named non-blank parameters from q.
func forwarded(q url.Values, names []string, extra ...string) url.Values {
	out := url.Values{}
	for _, name := range append(append([]string(nil), names...), extra...) {
		if name == "" {
			continue
		}
		if v := strings.TrimSpace(q.Get(name)); v != "" {
			out.Set(name, v)
		}
	}
	return out
}

func filterRows(rows []Row, term string) []Row {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}
	kept := rows[:0]
	for _, r := range rows {
		for _, c := range r.Cells {
			if strings.Contains(strings.ToLower(c.Value), term) {
				kept = append(kept, r)
				break
			}
		}
	}
	return kept
}

func intValue(v any, fallback int) int {
	if f, ok := v.(float64); ok && f >= 0 {
		return int(f)
	}
	return fallback
}
