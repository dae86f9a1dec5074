// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrun

import "github.com/charmbracelet/lipgloss"

// Progress line styles. The header announces the experiment, the
// input style marks the start of each data point's block, and the
// treatment style marks each treatment line.
var (
	styleHeader    = lipgloss.NewStyle().Bold(true).Underline(true)
	styleInput     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	styleTreatment = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)
