// Copyright 2019 Bull S.A.S. Atos Technologies - Bull, Rue Jean Jaures, B.P.68, 78340, Les Clayes-sous-Bois, France.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/ystia/hpcavail/availability"
	"github.com/ystia/hpcavail/helper/tabutil"
)

var reportHeaders = []string{"Node", "Partition", "Account", "QoS", "#CPU Cores Avail.", "#GPU Avail.", "GPU Name", "Memory Avail.(GB)"}

// nodePalette only holds two-digit foreground codes so that every colored cell,
// headers included, carries escape sequences of the same length
var nodePalette = []color.Attribute{
	color.FgHiRed,
	color.FgHiGreen,
	color.FgHiYellow,
	color.FgHiBlue,
	color.FgHiMagenta,
	color.FgHiCyan,
	color.FgRed,
	color.FgGreen,
	color.FgYellow,
	color.FgBlue,
	color.FgMagenta,
	color.FgCyan,
}

const headerColor = color.FgHiWhite

// nodeColors returns the color of each row: rows of a same node share a color and
// consecutive nodes get the next color of the palette
func nodeColors(rows []availability.Row) []color.Attribute {
	colors := make([]color.Attribute, len(rows))
	idx := -1
	for i, row := range rows {
		if i == 0 || row.Node != rows[i-1].Node {
			idx++
		}
		colors[i] = nodePalette[idx%len(nodePalette)]
	}
	return colors
}

func rowCells(row availability.Row) []string {
	return []string{
		row.Node,
		row.Partition,
		strings.Join(row.Accounts, ","),
		strings.Join(row.QoS, ","),
		fmt.Sprint(row.CPUCores),
		fmt.Sprint(row.GPUs),
		row.GPUModel,
		fmt.Sprint(row.MemoryGB),
	}
}

func renderReport(rows []availability.Row, colorize bool) string {
	table := tabutil.NewTable()
	headers := reportHeaders
	if colorize {
		headers = colorCells(color.New(headerColor), reportHeaders)
	}
	table.AddHeaders(headers...)

	colors := nodeColors(rows)
	for i, row := range rows {
		cells := rowCells(row)
		if colorize {
			cells = colorCells(color.New(colors[i]), cells)
		}
		items := make([]interface{}, len(cells))
		for j := range cells {
			items[j] = cells[j]
		}
		table.AddRow(items...)
	}
	return table.Render()
}

func colorCells(c *color.Color, cells []string) []string {
	res := make([]string, len(cells))
	for i := range cells {
		res[i] = c.Sprint(cells[i])
	}
	return res
}
