package project

import (
	"encoding/xml"
	"fmt"
	"os"
)

// POM is the subset of a Maven pom.xml the analyzer cares about.
type POM struct {
	XMLName      xml.Name      `xml:"project"`
	GroupID      string        `xml:"groupId"`
	ArtifactID   string        `xml:"artifactId"`
	Version      string        `xml:"version"`
	Parent       POMParent     `xml:"parent"`
	Dependencies []POMArtifact `xml:"dependencies>dependency"`
	Properties   POMProperties `xml:"properties"`
}

// POMParent is the parent coordinates block.
type POMParent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

// POMArtifact is one dependency declaration.
type POMArtifact struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

// POMProperties keeps the java version property when present.
type POMProperties struct {
	JavaVersion string `xml:"java.version"`
}

// ParsePOM reads and unmarshals a pom.xml.
func ParsePOM(path string) (*POM, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pom: %w", err)
	}

	var pom POM
	if err := xml.Unmarshal(raw, &pom); err != nil {
		return nil, fmt.Errorf("failed to parse pom: %w", err)
	}
	return &pom, nil
}

// UsesSpringBoot reports whether the pom inherits the Boot starter parent
// or declares any org.springframework.boot dependency.
func (p *POM) UsesSpringBoot() bool {
	if p.Parent.ArtifactID == "spring-boot-starter-parent" {
		return true
	}
	for _, dep := range p.Dependencies {
		if dep.GroupID == "org.springframework.boot" {
			return true
		}
	}
	return false
}

// SpringBootVersion returns the Boot version when it can be determined.
func (p *POM) SpringBootVersion() string {
	if p.Parent.ArtifactID == "spring-boot-starter-parent" {
		return p.Parent.Version
	}
	for _, dep := range p.Dependencies {
		if dep.GroupID == "org.springframework.boot" && dep.Version != "" {
			return dep.Version
		}
	}
	return ""
}
