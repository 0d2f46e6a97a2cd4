package algebra

import (
	"fmt"

	"github.com/go-errors/errors"
)

// Function maps the elements of its domain into its codomain.
type Function interface {
	Domain() Space
	Codomain() Space
	// Apply evaluates the function at x. It panics if x is not in the domain.
	Apply(x Element) Element
}

type generatorFunction struct {
	g      Element
	domain *ZMod
}

// NewGeneratorFunction returns x -> g^x from ZMod(order of g's space) into g's space.
func NewGeneratorFunction(g Element) (Function, error) {
	order := g.Space().Order()
	if order == nil {
		return nil, errors.WrapPrefix(ErrUnknownOrder, g.Space().String(), 0)
	}
	return &generatorFunction{g: g, domain: NewZMod(order)}, nil
}

func (f *generatorFunction) Domain() Space   { return f.domain }
func (f *generatorFunction) Codomain() Space { return f.g.Space() }

func (f *generatorFunction) Apply(x Element) Element {
	return f.g.SelfApply(f.domain.cast(x).v)
}

type productFunction struct {
	functions []Function
	domain    *ProductSpace
	codomain  *ProductSpace
}

// NewProductFunction returns (x_1, ..., x_n) -> (f_1(x_1), ..., f_n(x_n)).
func NewProductFunction(functions ...Function) Function {
	domains := make([]Space, len(functions))
	codomains := make([]Space, len(functions))
	for i, f := range functions {
		domains[i] = f.Domain()
		codomains[i] = f.Codomain()
	}
	return &productFunction{
		functions: append([]Function(nil), functions...),
		domain:    NewProductSpace(domains...),
		codomain:  NewProductSpace(codomains...),
	}
}

func (f *productFunction) Domain() Space   { return f.domain }
func (f *productFunction) Codomain() Space { return f.codomain }

func (f *productFunction) Apply(x Element) Element {
	t := f.domain.cast(x)
	elems := make([]Element, len(f.functions))
	for i, fi := range f.functions {
		elems[i] = fi.Apply(t.elems[i])
	}
	return f.codomain.tuple(elems)
}

type sharedDomainFunction struct {
	functions []Function
	codomain  *ProductSpace
}

// NewSharedDomainFunction returns x -> (f_1(x), ..., f_n(x)) for functions with equal domains.
func NewSharedDomainFunction(functions ...Function) (Function, error) {
	if len(functions) == 0 {
		return nil, errors.WrapPrefix(ErrArity, "no functions given", 0)
	}
	codomains := make([]Space, len(functions))
	for i, f := range functions {
		if !f.Domain().Equal(functions[0].Domain()) {
			return nil, errors.WrapPrefix(ErrIncompatibleFunctions,
				fmt.Sprintf("domain %v of function %d differs from %v", f.Domain(), i, functions[0].Domain()), 0)
		}
		codomains[i] = f.Codomain()
	}
	return &sharedDomainFunction{
		functions: append([]Function(nil), functions...),
		codomain:  NewProductSpace(codomains...),
	}, nil
}

func (f *sharedDomainFunction) Domain() Space   { return f.functions[0].Domain() }
func (f *sharedDomainFunction) Codomain() Space { return f.codomain }

func (f *sharedDomainFunction) Apply(x Element) Element {
	mustContain(f.Domain(), x)
	elems := make([]Element, len(f.functions))
	for i, fi := range f.functions {
		elems[i] = fi.Apply(x)
	}
	return f.codomain.tuple(elems)
}

type compositeFunction struct {
	functions []Function
}

// NewCompositeFunction returns x -> f_n(...f_2(f_1(x))), requiring each codomain to equal the
// next domain.
func NewCompositeFunction(functions ...Function) (Function, error) {
	if len(functions) == 0 {
		return nil, errors.WrapPrefix(ErrArity, "no functions given", 0)
	}
	for i := 1; i < len(functions); i++ {
		if !functions[i-1].Codomain().Equal(functions[i].Domain()) {
			return nil, errors.WrapPrefix(ErrIncompatibleFunctions,
				fmt.Sprintf("codomain of function %d does not match domain of function %d", i-1, i), 0)
		}
	}
	return &compositeFunction{functions: append([]Function(nil), functions...)}, nil
}

func (f *compositeFunction) Domain() Space   { return f.functions[0].Domain() }
func (f *compositeFunction) Codomain() Space { return f.functions[len(f.functions)-1].Codomain() }

func (f *compositeFunction) Apply(x Element) Element {
	for _, fi := range f.functions {
		x = fi.Apply(x)
	}
	return x
}

type projection struct {
	domain *ProductSpace
	index  int
}

// NewProjection returns (x_1, ..., x_n) -> x_index.
func NewProjection(domain *ProductSpace, index int) (Function, error) {
	if index < 0 || index >= domain.Arity() {
		return nil, errors.WrapPrefix(ErrArity, fmt.Sprintf("index %d out of range for %v", index, domain), 0)
	}
	return &projection{domain: domain, index: index}, nil
}

func (f *projection) Domain() Space   { return f.domain }
func (f *projection) Codomain() Space { return f.domain.At(f.index) }

func (f *projection) Apply(x Element) Element {
	return f.domain.cast(x).elems[f.index]
}

type funcAdapter struct {
	domain, codomain Space
	fn               func(Element) Element
}

// NewFunc wraps fn as a Function. Apply checks that inputs lie in the domain; fn must return
// elements of the codomain.
func NewFunc(domain, codomain Space, fn func(Element) Element) Function {
	return &funcAdapter{domain: domain, codomain: codomain, fn: fn}
}

func (f *funcAdapter) Domain() Space   { return f.domain }
func (f *funcAdapter) Codomain() Space { return f.codomain }

func (f *funcAdapter) Apply(x Element) Element {
	mustContain(f.domain, x)
	return f.fn(x)
}

type partialFunction struct {
	f      Function
	full   *ProductSpace
	fixed  Element
	index  int
	domain Space
	single bool // domain is the one remaining component
}

// PartiallyApply fixes component index of f's product domain to fixed. The result takes the
// remaining components as its domain: a ProductSpace, or the single remaining space itself when
// f's domain has two components.
func PartiallyApply(f Function, fixed Element, index int) (Function, error) {
	full, ok := f.Domain().(*ProductSpace)
	if !ok || full.Arity() < 2 {
		return nil, errors.WrapPrefix(ErrArity, "partial application needs a product domain of arity 2 or more", 0)
	}
	if index < 0 || index >= full.Arity() {
		return nil, errors.WrapPrefix(ErrArity, fmt.Sprintf("index %d out of range for %v", index, full), 0)
	}
	if fixed == nil || !full.At(index).Contains(fixed) {
		return nil, errors.WrapPrefix(ErrNotAMember, fmt.Sprintf("fixed value for component %d of %v", index, full), 0)
	}

	rest := make([]Space, 0, full.Arity()-1)
	for i, s := range full.spaces {
		if i != index {
			rest = append(rest, s)
		}
	}
	pf := &partialFunction{f: f, full: full, fixed: fixed, index: index, single: len(rest) == 1}
	if pf.single {
		pf.domain = rest[0]
	} else {
		pf.domain = NewProductSpace(rest...)
	}
	return pf, nil
}

func (f *partialFunction) Domain() Space   { return f.domain }
func (f *partialFunction) Codomain() Space { return f.f.Codomain() }

func (f *partialFunction) Apply(x Element) Element {
	mustContain(f.domain, x)
	rest := []Element{x}
	if !f.single {
		rest = x.(*Tuple).elems
	}
	elems := make([]Element, 0, f.full.Arity())
	elems = append(elems, rest[:f.index]...)
	elems = append(elems, f.fixed)
	elems = append(elems, rest[f.index:]...)
	return f.f.Apply(f.full.tuple(elems))
}
