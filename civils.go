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

// Package civils holds the error kinds shared by the drainage, foundations
// and housing plan generators.
package civils

// Version gives the version number.
const Version = "1.0.0"
