package schema

import "fmt"

// Merge appends every definition of other to s, preserving order. Names must be
// unique across types, enums, unions, scalars and services; the first metadata
// value set wins.
func (s *Schema) Merge(other *Schema) error {
	if other == nil {
		return nil
	}

	seen := make(map[string]bool)
	for _, name := range s.definitionNames() {
		seen[name] = true
	}
	for _, name := range other.definitionNames() {
		if seen[name] {
			return fmt.Errorf("%w: %s", ErrDuplicateDefinition, name)
		}
		seen[name] = true
	}

	s.Types = append(s.Types, other.Types...)
	s.Enums = append(s.Enums, other.Enums...)
	s.Unions = append(s.Unions, other.Unions...)
	s.Scalars = append(s.Scalars, other.Scalars...)
	s.Services = append(s.Services, other.Services...)

	if s.Meta.Namespace == "" {
		s.Meta.Namespace = other.Meta.Namespace
	}
	if s.Meta.Version == "" {
		s.Meta.Version = other.Meta.Version
	}
	if s.Meta.Service == "" {
		s.Meta.Service = other.Meta.Service
	}
	return nil
}

func (s *Schema) definitionNames() []string {
	names := make([]string, 0, len(s.Types)+len(s.Enums)+len(s.Unions)+len(s.Scalars)+len(s.Services))
	for _, t := range s.Types {
		names = append(names, t.Name)
	}
	for _, e := range s.Enums {
		names = append(names, e.Name)
	}
	for _, u := range s.Unions {
		names = append(names, u.Name)
	}
	for _, sc := range s.Scalars {
		names = append(names, sc.Name)
	}
	for _, svc := range s.Services {
		names = append(names, svc.Name)
	}
	return names
}
