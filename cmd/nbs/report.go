package main

import (
	"time"

	"github.com/google/uuid"

	"github.com/TrevorS/nbs"
	"github.com/TrevorS/nbs/internal/runconfig"
)

// Report is the JSON document written by "nbs run".
type Report struct {
	RunID            string            `json:"run_id"`
	CreatedAt        time.Time         `json:"created_at"`
	GroupX           Group             `json:"group_x"`
	GroupY           Group             `json:"group_y"`
	Nodes            int               `json:"nodes"`
	Parameters       Parameters        `json:"parameters"`
	Components       []ComponentReport `json:"components"`
	NullDistribution []int             `json:"null_distribution"`
}

// Group describes one input population.
type Group struct {
	Path     string `json:"path"`
	Subjects int    `json:"subjects"`
}

// Parameters echoes the settings the run actually used.
type Parameters struct {
	Threshold    float64 `json:"threshold"`
	Tail         string  `json:"tail"`
	Permutations int     `json:"permutations"`
	Seed         uint64  `json:"seed"`
	Alpha        float64 `json:"alpha"`
}

// ComponentReport is one observed component.
type ComponentReport struct {
	Label       int      `json:"label"`
	Size        int      `json:"size"`
	PValue      float64  `json:"p_value"`
	Significant bool     `json:"significant"`
	Edges       [][2]int `json:"edges"`
}

func newReport(cfg runconfig.Config, nx, ny int, r *nbs.Result) *Report {
	rep := &Report{
		RunID:     uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		GroupX:    Group{Path: cfg.GroupX, Subjects: nx},
		GroupY:    Group{Path: cfg.GroupY, Subjects: ny},
		Nodes:     r.Nodes,
		Parameters: Parameters{
			Threshold:    cfg.Threshold,
			Tail:         cfg.Tail,
			Permutations: len(r.NullDistribution),
			Seed:         r.Seed,
			Alpha:        cfg.Alpha,
		},
		Components:       make([]ComponentReport, 0, len(r.Components)),
		NullDistribution: r.NullDistribution,
	}
	for i, c := range r.Components {
		edges := make([][2]int, len(c.Edges))
		for k, e := range c.Edges {
			edges[k] = [2]int{e.I, e.J}
		}
		rep.Components = append(rep.Components, ComponentReport{
			Label:       c.Label,
			Size:        c.Size,
			PValue:      r.PValues[i],
			Significant: r.PValues[i] < cfg.Alpha,
			Edges:       edges,
		})
	}
	return rep
}
