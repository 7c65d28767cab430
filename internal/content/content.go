// internal/content/content.go
//
// Literal display content for the wizard views. The defaults are embedded;
// a YAML file with the same shape can replace them.

package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// QuestionType classifies a suggested question.
type QuestionType string

const (
	QuestionRisk        QuestionType = "risk"
	QuestionOpportunity QuestionType = "opportunity"
	QuestionNeutral     QuestionType = "neutral"
)

// Content is everything the views display.
type Content struct {
	Version   int       `yaml:"version"`
	Header    Header    `yaml:"header"`
	Upload    Upload    `yaml:"upload"`
	Analysis  Analysis  `yaml:"analysis"`
	Scenarios Scenarios `yaml:"scenarios"`
	Memo      Memo      `yaml:"memo"`
}

// Header is the top bar text.
type Header struct {
	Product string `yaml:"product"`
	User    string `yaml:"user"`
}

// Upload holds the intake screen copy.
type Upload struct {
	Headline    string      `yaml:"headline"`
	Tagline     string      `yaml:"tagline"`
	Prompt      string      `yaml:"prompt"`
	Supports    string      `yaml:"supports"`
	HealthCheck HealthCheck `yaml:"health_check"`
}

// HealthCheck is the static panel shown after a file is picked.
type HealthCheck struct {
	Title    string      `yaml:"title"`
	Score    int         `yaml:"score"`
	MaxScore int         `yaml:"max_score"`
	Rows     []HealthRow `yaml:"rows"`
}

// Ratio returns Score/MaxScore clamped to [0,1].
func (h HealthCheck) Ratio() float64 {
	if h.MaxScore <= 0 {
		return 0
	}
	r := float64(h.Score) / float64(h.MaxScore)
	return min(1, max(0, r))
}

// HealthRow is one label/value line of the health panel.
type HealthRow struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
	Tone  string `yaml:"tone"`
}

// Analysis holds the question list.
type Analysis struct {
	Title     string     `yaml:"title"`
	Subtitle  string     `yaml:"subtitle"`
	Questions []Question `yaml:"questions"`
}

// Question is a suggested line of inquiry, ranked by position.
type Question struct {
	ID        string       `yaml:"id"`
	Text      string       `yaml:"text"`
	Type      QuestionType `yaml:"type"`
	Impact    string       `yaml:"impact"`
	Reasoning string       `yaml:"reasoning"`
}

// Scenarios holds the lever panel and the cash-flow series.
type Scenarios struct {
	Title         string      `yaml:"title"`
	ChartTitle    string      `yaml:"chart_title"`
	BaselineLabel string      `yaml:"baseline_label"`
	ScenarioLabel string      `yaml:"scenario_label"`
	Threshold     Threshold   `yaml:"threshold"`
	Badge         string      `yaml:"badge"`
	Spend         RangeLever  `yaml:"spend"`
	Freeze        ToggleLever `yaml:"freeze"`
	Series        []Point     `yaml:"series"`
}

// Threshold is the reference line drawn across the series.
type Threshold struct {
	Label string `yaml:"label"`
	Value int    `yaml:"value"`
}

// RangeLever is a percentage slider.
type RangeLever struct {
	Label   string `yaml:"label"`
	Min     int    `yaml:"min"`
	Max     int    `yaml:"max"`
	Step    int    `yaml:"step"`
	Default int    `yaml:"default"`
	Note    string `yaml:"note"`
}

// Clamp keeps v inside [Min, Max].
func (r RangeLever) Clamp(v int) int {
	return min(r.Max, max(r.Min, v))
}

// ToggleLever is an on/off switch.
type ToggleLever struct {
	Label   string `yaml:"label"`
	Default bool   `yaml:"default"`
	Note    string `yaml:"note"`
}

// Point is one month of the projected series.
type Point struct {
	Month    string `yaml:"month"`
	Baseline int    `yaml:"baseline"`
	Scenario int    `yaml:"scenario"`
}

// Memo is the final decision memo.
type Memo struct {
	Title      string     `yaml:"title"`
	Generated  string     `yaml:"generated"`
	ID         string     `yaml:"id"`
	Confidence string     `yaml:"confidence"`
	BLUF       string     `yaml:"bluf"`
	Evidence   []MemoItem `yaml:"evidence"`
	Risks      []MemoItem `yaml:"risks"`
}

// MemoItem is an evidence point or a trade-off.
type MemoItem struct {
	Title  string `yaml:"title"`
	Detail string `yaml:"detail"`
	Source string `yaml:"source,omitempty"`
}

// Default returns the embedded content.
func Default() Content {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("content: embedded default is invalid: %v", err))
	}
	return c
}

// Parse decodes content YAML. Sections left out keep their defaults.
func Parse(data []byte) (Content, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Content{}, fmt.Errorf("content: payload is empty")
	}
	var c Content
	if !bytes.Equal(data, defaultYAML) {
		base, err := Parse(defaultYAML)
		if err != nil {
			return Content{}, err
		}
		c = base
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Content{}, fmt.Errorf("content: decode: %w", err)
	}
	if err := c.validate(); err != nil {
		return Content{}, fmt.Errorf("content: %w", err)
	}
	return c, nil
}

// Load reads content from path. An empty path yields the defaults.
func Load(path string) (Content, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, fmt.Errorf("content: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return Content{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c Content) validate() error {
	if c.Version < 1 {
		return fmt.Errorf("version must be >= 1")
	}
	for i, q := range c.Analysis.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("analysis.questions[%d]: text is required", i)
		}
		switch q.Type {
		case QuestionRisk, QuestionOpportunity, QuestionNeutral:
		default:
			return fmt.Errorf("analysis.questions[%d]: type must be risk, opportunity or neutral", i)
		}
	}
	spend := c.Scenarios.Spend
	if spend.Min > spend.Max {
		return fmt.Errorf("scenarios.spend: min %d exceeds max %d", spend.Min, spend.Max)
	}
	if spend.Default < spend.Min || spend.Default > spend.Max {
		return fmt.Errorf("scenarios.spend: default %d outside [%d, %d]", spend.Default, spend.Min, spend.Max)
	}
	return nil
}
