/*
Copyright © 2018 the civils authors.
This file is part of civils.

civils is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

civils is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with civils.  If not, see <http://www.gnu.org/licenses/>.
*/


package civilutil

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/jppcivil/civils/drainage"
	"github.com/jppcivil/civils/foundations"
)

// LoadSite reads a site file. Settings missing from the file keep the
// defaults of foundations.NewSite.
func LoadSite(path string) (*foundations.Site, error) {
	path, err := checkInputFile("Site", path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("civils: opening site file: %v", err)
	}
	defer f.Close()
	s := foundations.NewSite()
	if _, err := toml.DecodeReader(f, s); err != nil {
		return nil, fmt.Errorf("civils: reading site file %s: %v", path, err)
	}
	return s, nil
}

// MergeTrees draws the merged tree rings of the site in the site file.
func MergeTrees(site, output string) error {
	s, err := LoadSite(site)
	if err != nil {
		return err
	}
	sink, closeSink, err := openSink(output)
	if err != nil {
		return err
	}
	_, err = foundations.NewClusterer(foundations.NHBCRings{}).Draw(s, sink)
	if cerr := closeSink(); err == nil && cerr != nil {
		err = fmt.Errorf("civils: writing %s: %v", output, cerr)
	}
	return err
}

// LayPipe lays and draws a pipe run between two plan locations given as
// "x,y".
func LayPipe(start, end string, invert float64, gradient int, name, output string) (drainage.PipeRun, error) {
	s, err := parsePoint(start)
	if err != nil {
		return drainage.PipeRun{}, err
	}
	e, err := parsePoint(end)
	if err != nil {
		return drainage.PipeRun{}, err
	}
	run, err := drainage.LayPipe(s.To3(0), e.To3(0), invert, gradient)
	if err != nil {
		return drainage.PipeRun{}, err
	}
	sink, closeSink, err := openSink(output)
	if err != nil {
		return drainage.PipeRun{}, err
	}
	err = sink.Commit(run.Batch(name))
	if cerr := closeSink(); err == nil && cerr != nil {
		err = fmt.Errorf("civils: writing %s: %v", output, cerr)
	}
	return run, err
}
