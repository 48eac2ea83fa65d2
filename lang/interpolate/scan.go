// Mgmt
// Copyright (C) James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.
//
// Additional permission under GNU GPL version 3 section 7
//
// If you modify this program, or any covered work, by linking or combining it
// with embedded mcl code and modules (and that the embedded mcl code and
// modules which link with this program, contain a copy of their source code in
// the authoritative form) containing parts covered by the terms of any other
// license, the licensors of this program grant you additional permission to
// convey the resulting work. Furthermore, the licensors of this program grant
// the original author, James Shubin, additional permission to update this
// additional permission if he deems it necessary to achieve the goals of this
// additional permission.

package interpolate

import (
	"strings"

	"github.com/purpleidea/storyc/lang/interfaces"
)

const (
	// Open starts a code segment.
	Open = '{'

	// Close ends a code segment.
	Close = '}'

	// Escape makes the next brace or escape character literal.
	Escape = '\\'
)

// Scan splits a string template into literal and code segments. Adjacent
// literals are merged. The errors that are returned have no node set, the
// caller knows which string they belong to.
func Scan(data string) (Stream, error) {
	out := Stream{}
	var text strings.Builder
	var code strings.Builder
	inCode := false
	start := 0 // offset of the current code segment

	flush := func() {
		if text.Len() > 0 {
			out = append(out, Literal{Value: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(data); i++ {
		c := data[i]

		if c == Escape && i+1 < len(data) {
			next := data[i+1]
			if next == Open || next == Close || next == Escape {
				if inCode {
					code.WriteByte(c)
					code.WriteByte(next)
				} else {
					text.WriteByte(next)
				}
				i++
				continue
			}
		}

		if inCode {
			switch c {
			case Open:
				return nil, interfaces.NewError(interfaces.ErrStringTemplatesNested, nil)
			case Close:
				if strings.TrimSpace(code.String()) == "" {
					return nil, interfaces.NewError(interfaces.ErrStringTemplatesEmpty, nil)
				}
				out = append(out, Code{Value: code.String(), Offset: start})
				code.Reset()
				inCode = false
			default:
				code.WriteByte(c)
			}
			continue
		}

		if c == Open {
			flush()
			inCode = true
			start = i + 1
			continue
		}
		text.WriteByte(c) // a stray close brace is literal text
	}

	if inCode {
		return nil, interfaces.NewError(interfaces.ErrStringTemplatesUnclosed, nil)
	}
	flush()
	return out, nil
}
