package minilogic

import (
	"fmt"
	"strings"
)

// IRReport captures the abstraction a check ran on.
type IRReport struct {
	Atoms      []string
	Candidates map[string][]int64
}

func (c *Checker) withDebugIR(report Report, ab *abstraction, names []string, cands map[string][]int64) Report {
	if !c.config.DebugIR {
		return report
	}

	ir := IRReport{Candidates: cands}
	for _, a := range ab.atoms {
		ir.Atoms = append(ir.Atoms, formatAtomIR(a))
	}
	report.IR = &ir

	report.Detail = strings.TrimSpace(report.Detail)
	if report.Detail != "" {
		report.Detail += "\n"
	}
	report.Detail += "IR(atoms):\n" + indentIR(strings.Join(ir.Atoms, "\n")) +
		"\nIR(candidates):\n" + indentIR(formatCandidatesIR(names, cands))
	return report
}

func formatAtomIR(a atom) string {
	return fmt.Sprintf("%s: %s", a.v, a)
}

func formatCandidatesIR(names []string, cands map[string][]int64) string {
	lines := make([]string, 0, len(names))
	for _, n := range names {
		vals := make([]string, len(cands[n]))
		for i, v := range cands[n] {
			vals[i] = fmt.Sprintf("%d", v)
		}
		lines = append(lines, n+" in {"+strings.Join(vals, ", ")+"}")
	}
	return strings.Join(lines, "\n")
}

func indentIR(value string) string {
	if value == "" {
		return "  (none)"
	}
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
