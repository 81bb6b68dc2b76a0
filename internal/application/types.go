// Package application extracts Argo CD Applications and ApplicationSets from
// manifest files and rewrites them so they render against a preview branch.
package application

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Kind is a recognized Argo CD resource kind.
type Kind string

const (
	KindApplication    Kind = "Application"
	KindApplicationSet Kind = "ApplicationSet"
)

// SpecPath returns the path of the application spec within a resource of
// this kind.
func (k Kind) SpecPath() []string {
	if k == KindApplicationSet {
		return []string{"spec", "template", "spec"}
	}
	return []string{"spec"}
}

func kindOf(kind string) (Kind, bool) {
	switch Kind(kind) {
	case KindApplication, KindApplicationSet:
		return Kind(kind), true
	default:
		return "", false
	}
}

// Application is a selected Application or ApplicationSet.
type Application struct {
	FileName string
	Object   *unstructured.Unstructured
	Kind     Kind
}

// Name returns metadata.name or "unknown".
func (a Application) Name() string {
	name, found, err := unstructured.NestedString(a.Object.Object, "metadata", "name")
	if err != nil || !found {
		return "unknown"
	}
	return name
}
