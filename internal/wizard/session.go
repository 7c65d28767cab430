package wizard

import "fmt"

// Artifact identifies a user-selected file. Only the name and size are
// kept; the content is never read.
type Artifact struct {
	Name string
	Size int64
}

// SizeLabel formats the size in kilobytes with two decimals.
func (a Artifact) SizeLabel() string {
	return fmt.Sprintf("%.2f KB", float64(a.Size)/1024)
}

// Session is the wizard state for one interactive run.
type Session struct {
	Step     Step
	Artifact *Artifact
}

// HasArtifact reports whether an artifact reference has been recorded.
func (s Session) HasArtifact() bool {
	return s.Artifact != nil
}

func (s Session) clone() Session {
	out := Session{Step: s.Step}
	if s.Artifact != nil {
		a := *s.Artifact
		out.Artifact = &a
	}
	return out
}
