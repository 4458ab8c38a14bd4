// Package workflow holds the review pipeline: which role owns each stage, the
// table of transitions between stages, and who may see which submission.
// Everything here is pure; storage and transport live elsewhere.
package workflow

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/linskybing/moderation-platform/internal/domain/review"
	"github.com/linskybing/moderation-platform/internal/domain/submission"
	"github.com/linskybing/moderation-platform/internal/domain/user"
	"gopkg.in/yaml.v2"
)

//go:embed pipeline.yaml
var defaultPipelineYAML []byte

type pipelineFile struct {
	Entry       string      `yaml:"entry"`
	Corrections string      `yaml:"corrections"`
	Assigners   []string    `yaml:"assigners"`
	Overrides   []string    `yaml:"overrides"`
	Stages      []stageFile `yaml:"stages"`
}

type stageFile struct {
	Status    string            `yaml:"status"`
	Owner     string            `yaml:"owner"`
	Label     string            `yaml:"label"`
	Decisions map[string]string `yaml:"decisions"`
}

type stage struct {
	status      submission.Status
	owner       user.Role
	label       string
	transitions map[review.Decision]submission.Status
}

// Pipeline is the immutable stage ownership and transition table. Build it
// once with Default or Load and share the pointer.
type Pipeline struct {
	entry       submission.Status
	corrections submission.Status
	assigners   []user.Role
	overrides   []user.Role
	stages      []stage
	byStatus    map[submission.Status]int
}

// StageInfo is a read-only view of one stage.
type StageInfo struct {
	Status      submission.Status                     `json:"status"`
	Owner       user.Role                             `json:"owner"`
	Label       string                                `json:"label"`
	Transitions map[review.Decision]submission.Status `json:"transitions"`
}

// Default returns the pipeline compiled into the binary.
func Default() (*Pipeline, error) {
	return Parse(defaultPipelineYAML)
}

// Load reads the pipeline from path, or the built-in one when path is empty.
func Load(path string) (*Pipeline, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a pipeline document.
func Parse(data []byte) (*Pipeline, error) {
	var f pipelineFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("decode pipeline: %w", err)
	}
	return build(f)
}

func build(f pipelineFile) (*Pipeline, error) {
	p := &Pipeline{
		entry:       submission.Status(f.Entry),
		corrections: submission.Status(f.Corrections),
		byStatus:    make(map[submission.Status]int, len(f.Stages)),
	}

	if !p.corrections.Valid() {
		return nil, fmt.Errorf("corrections status %q is not a known status", f.Corrections)
	}

	var err error
	if p.assigners, err = parseRoles("assigners", f.Assigners); err != nil {
		return nil, err
	}
	if p.overrides, err = parseRoles("overrides", f.Overrides); err != nil {
		return nil, err
	}

	if len(f.Stages) == 0 {
		return nil, fmt.Errorf("pipeline has no stages")
	}

	owners := make(map[user.Role]submission.Status, len(f.Stages))
	for _, sf := range f.Stages {
		st, err := buildStage(sf, p.corrections)
		if err != nil {
			return nil, err
		}
		if _, dup := p.byStatus[st.status]; dup {
			return nil, fmt.Errorf("stage %q defined twice", st.status)
		}
		if other, dup := owners[st.owner]; dup {
			return nil, fmt.Errorf("role %q owns both %q and %q", st.owner, other, st.status)
		}
		if st.status == p.corrections || st.status == submission.StatusApproved || st.status.InIntake() {
			return nil, fmt.Errorf("status %q cannot be a review stage", st.status)
		}
		owners[st.owner] = st.status
		p.byStatus[st.status] = len(p.stages)
		p.stages = append(p.stages, st)
	}

	if _, ok := p.byStatus[p.entry]; !ok {
		return nil, fmt.Errorf("entry status %q is not a stage", f.Entry)
	}
	if p.entry != p.stages[0].status {
		return nil, fmt.Errorf("entry status %q must be the first stage", f.Entry)
	}
	if err := p.checkChain(); err != nil {
		return nil, err
	}
	return p, nil
}

// checkChain requires every stage to offer both corrective decisions and to
// advance only to the stage that follows it, the last one to approved.
func (p *Pipeline) checkChain() error {
	for i, st := range p.stages {
		for _, d := range []review.Decision{review.DecisionRejected, review.DecisionCorrectionsRequired} {
			if _, ok := st.transitions[d]; !ok {
				return fmt.Errorf("stage %q must define decision %q", st.status, d)
			}
		}
		want := submission.StatusApproved
		if i+1 < len(p.stages) {
			want = p.stages[i+1].status
		}
		advancing := 0
		for d, target := range st.transitions {
			if isCorrective(d) {
				continue
			}
			if target != want {
				return fmt.Errorf("stage %q: decision %q must lead to %q, not %q", st.status, d, want, target)
			}
			advancing++
		}
		if advancing == 0 {
			return fmt.Errorf("stage %q has no advancing decision", st.status)
		}
	}
	return nil
}

func buildStage(sf stageFile, corrections submission.Status) (stage, error) {
	st := stage{
		status:      submission.Status(sf.Status),
		owner:       user.Role(sf.Owner),
		label:       sf.Label,
		transitions: make(map[review.Decision]submission.Status, len(sf.Decisions)),
	}
	if !st.status.Valid() {
		return stage{}, fmt.Errorf("stage status %q is not a known status", sf.Status)
	}
	if !st.owner.Valid() {
		return stage{}, fmt.Errorf("stage %q: owner %q is not a known role", sf.Status, sf.Owner)
	}
	if len(sf.Decisions) == 0 {
		return stage{}, fmt.Errorf("stage %q has no decisions", sf.Status)
	}
	for rawDecision, rawTarget := range sf.Decisions {
		d := review.Decision(rawDecision)
		if canonical, ok := review.ParseDecision(rawDecision); !ok || canonical != d {
			return stage{}, fmt.Errorf("stage %q: %q is not a canonical decision", sf.Status, rawDecision)
		}
		target := submission.Status(rawTarget)
		if !target.Valid() {
			return stage{}, fmt.Errorf("stage %q: decision %q leads to unknown status %q", sf.Status, d, rawTarget)
		}
		if isCorrective(d) && target != corrections {
			return stage{}, fmt.Errorf("stage %q: decision %q must lead to %q", sf.Status, d, corrections)
		}
		if target.InIntake() {
			return stage{}, fmt.Errorf("stage %q: decision %q cannot lead back to intake", sf.Status, d)
		}
		st.transitions[d] = target
	}
	return st, nil
}

func parseRoles(field string, raw []string) ([]user.Role, error) {
	roles := make([]user.Role, 0, len(raw))
	for _, r := range raw {
		role := user.Role(r)
		if !role.Valid() {
			return nil, fmt.Errorf("%s: %q is not a known role", field, r)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func isCorrective(d review.Decision) bool {
	return d == review.DecisionRejected || d == review.DecisionCorrectionsRequired
}

// Entry is the first active review stage.
func (p *Pipeline) Entry() submission.Status {
	return p.entry
}

// Corrections is the shared status every corrective decision leads to.
func (p *Pipeline) Corrections() submission.Status {
	return p.corrections
}

// Owner returns the role that decides while a submission is in status.
func (p *Pipeline) Owner(status submission.Status) (user.Role, bool) {
	i, ok := p.byStatus[status]
	if !ok {
		return "", false
	}
	return p.stages[i].owner, true
}

// IsReviewStage reports whether status is one of the owned review stages.
func (p *Pipeline) IsReviewStage(status submission.Status) bool {
	_, ok := p.byStatus[status]
	return ok
}

// ReviewStatuses lists the stage statuses in pipeline order.
func (p *Pipeline) ReviewStatuses() []submission.Status {
	out := make([]submission.Status, 0, len(p.stages))
	for _, st := range p.stages {
		out = append(out, st.status)
	}
	return out
}

// Decisions lists the decisions valid at status, sorted.
func (p *Pipeline) Decisions(status submission.Status) []review.Decision {
	i, ok := p.byStatus[status]
	if !ok {
		return nil
	}
	out := make([]review.Decision, 0, len(p.stages[i].transitions))
	for d := range p.stages[i].transitions {
		out = append(out, d)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

// Allows reports whether decision may be recorded while in status.
func (p *Pipeline) Allows(status submission.Status, decision review.Decision) bool {
	i, ok := p.byStatus[status]
	if !ok {
		return false
	}
	_, ok = p.stages[i].transitions[decision]
	return ok
}

// CanAssign reports whether role may move a submission out of intake.
func (p *Pipeline) CanAssign(role user.Role) bool {
	return role.In(p.assigners...)
}

// CanOverride reports whether role may act on behalf of a submission's creator.
func (p *Pipeline) CanOverride(role user.Role) bool {
	return role.In(p.overrides...)
}

// Stages returns a copy of the stage table in pipeline order.
func (p *Pipeline) Stages() []StageInfo {
	out := make([]StageInfo, 0, len(p.stages))
	for _, st := range p.stages {
		transitions := make(map[review.Decision]submission.Status, len(st.transitions))
		for d, s := range st.transitions {
			transitions[d] = s
		}
		out = append(out, StageInfo{
			Status:      st.status,
			Owner:       st.owner,
			Label:       st.label,
			Transitions: transitions,
		})
	}
	return out
}
