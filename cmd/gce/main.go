/*
Copyright © 2026 the GalvanicCorrosionEngine authors.
This file is part of GalvanicCorrosionEngine.

GalvanicCorrosionEngine is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GalvanicCorrosionEngine is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GalvanicCorrosionEngine.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command gce is a command-line interface for the galvanic corrosion engine.
package main

import (
	"fmt"
	"os"

	"github.com/sap8b/GalvanicCorrosionEngine/gceutil"
)

func main() {
	if err := gceutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
