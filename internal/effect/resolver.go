package effect

// LevelEffects carries the effect specs configured for one mobilisation
// level.
type LevelEffects struct {
	Level   string `json:"level"`
	Effects []Spec `json:"effects"`
}

// ResolveContext is the consistent point-in-time view a resolver works
// from. The caller (page loader or tick job) is responsible for reading
// all fields from the same snapshot.
type ResolveContext struct {
	CountryEffects    []CountryEffect
	MobilisationLevel string
	LevelEffects      []LevelEffects
	GlobalEffects     []Spec
}

// SourceFunc produces the resolved effects of one origin. Adding a new
// effect source means appending one SourceFunc to the resolver; downstream
// consumers are untouched.
type SourceFunc func(ResolveContext) []ResolvedEffect

// Resolver flattens all effect sources into one list. The source order is
// fixed at construction so that downstream seeded text generation stays
// deterministic, but no calculation depends on it.
type Resolver struct {
	sources []SourceFunc
}

// NewResolver returns a resolver over the three standard sources:
// persisted country effects, mobilisation-level effects, global growth
// effects, in that order.
func NewResolver(extra ...SourceFunc) *Resolver {
	sources := []SourceFunc{countrySource, mobilisationSource, globalSource}
	sources = append(sources, extra...)
	return &Resolver{sources: sources}
}

// EffectsForCountry concatenates every source's resolved effects.
func (r *Resolver) EffectsForCountry(rc ResolveContext) []ResolvedEffect {
	var resolved []ResolvedEffect
	for _, source := range r.sources {
		resolved = append(resolved, source(rc)...)
	}
	return resolved
}

// countrySource maps stored rows 1:1, skipping expired ones.
func countrySource(rc ResolveContext) []ResolvedEffect {
	var resolved []ResolvedEffect
	for _, row := range rc.CountryEffects {
		if !row.Active() {
			continue
		}

		label := row.Name
		if label == "" {
			if meta, ok := MetaFor(row.Kind); ok {
				label = meta.Label
			}
		}

		resolved = append(resolved, ResolvedEffect{
			Kind:          row.Kind,
			Target:        row.Target,
			Value:         row.Value,
			Source:        SourceCountry,
			Label:         label,
			Permanent:     row.DurationKind == DurationPermanent,
			DaysRemaining: row.DaysRemaining,
		})
	}
	return resolved
}

// mobilisationSource activates the specs of the country's current level
// only. Level effects are pseudo-permanent: they last as long as the level.
func mobilisationSource(rc ResolveContext) []ResolvedEffect {
	var resolved []ResolvedEffect
	for _, level := range rc.LevelEffects {
		if level.Level != rc.MobilisationLevel {
			continue
		}
		for _, spec := range level.Effects {
			resolved = append(resolved, specToResolved(spec, SourceMobilisation))
		}
	}
	return resolved
}

// globalSource maps the always-on global growth effects.
func globalSource(rc ResolveContext) []ResolvedEffect {
	var resolved []ResolvedEffect
	for _, spec := range rc.GlobalEffects {
		resolved = append(resolved, specToResolved(spec, SourceGlobal))
	}
	return resolved
}

func specToResolved(spec Spec, source Source) ResolvedEffect {
	label := spec.Label
	if label == "" {
		if meta, ok := MetaFor(spec.Kind); ok {
			label = meta.Label
		}
	}

	return ResolvedEffect{
		Kind:      spec.Kind,
		Target:    spec.Target,
		Value:     spec.Value,
		Source:    source,
		Label:     label,
		Permanent: true,
	}
}
