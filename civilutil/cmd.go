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
	"time"

	"github.com/jppcivil/civils"
	"github.com/jppcivil/civils/drainage"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to civils.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the minimum level of log messages to print:
              one of debug, info, warning or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Output",
			usage: `
              Output is the drawing file to write. The format is chosen by
              the file extension: .dxf for a CAD drawing or .geojson for
              newline-delimited GeoJSON records. For the schedule command
              it is a CSV file, and the schedule is printed if it is empty.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{planCmd.Flags(), scheduleCmd.Flags(), mergeCmd.Flags(), layCmd.Flags()},
		},
		{
			name: "Manholes",
			usage: `
              Manholes is the manhole schedule CSV file.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{manholeCmd.PersistentFlags()},
		},
		{
			name: "Pipes",
			usage: `
              Pipes is the pipe schedule CSV file giving the invert and cover
              levels of each manhole.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{manholeCmd.PersistentFlags()},
		},
		{
			name: "Benching.Minor",
			usage: `
              Benching.Minor is the minimum minor benching width in mm for
              manholes that do not specify one.`,
			defaultVal: 300,
			flagsets:   []*pflag.FlagSet{manholeCmd.PersistentFlags()},
		},
		{
			name: "Benching.Major",
			usage: `
              Benching.Major is the minimum major benching width in mm for
              manholes that do not specify one.`,
			defaultVal: 450,
			flagsets:   []*pflag.FlagSet{manholeCmd.PersistentFlags()},
		},
		{
			name: "Spacing",
			usage: `
              Spacing is the distance in mm along +X between consecutive
              manhole plan details.`,
			defaultVal: float64(drainage.PlanSpacing),
			flagsets:   []*pflag.FlagSet{planCmd.Flags()},
		},
		{
			name: "Site",
			usage: `
              Site is the TOML file holding the site foundation settings and
              the tree survey.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{mergeCmd.Flags()},
		},
		{
			name: "Pipe.Start",
			usage: `
              Pipe.Start is the plan location "x,y" of the upstream end of
              the pipe.`,
			defaultVal: "0,0",
			flagsets:   []*pflag.FlagSet{layCmd.Flags()},
		},
		{
			name: "Pipe.End",
			usage: `
              Pipe.End is the plan location "x,y" of the downstream end of
              the pipe.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{layCmd.Flags()},
		},
		{
			name: "Pipe.Invert",
			usage: `
              Pipe.Invert is the invert level at the upstream end.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{layCmd.Flags()},
		},
		{
			name: "Pipe.Gradient",
			usage: `
              Pipe.Gradient is the pipe gradient as 1 in N. Storm sewers are
              normally laid at 1 in 100 and foul sewers at 1 in 80.`,
			defaultVal: drainage.StormGradient,
			flagsets:   []*pflag.FlagSet{layCmd.Flags()},
		},
		{
			name: "Pipe.Name",
			usage: `
              Pipe.Name is the reference of the pipe run.`,
			defaultVal: "pipe",
			flagsets:   []*pflag.FlagSet{layCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("CIVILS")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
		}
		Cfg.BindPFlag(option.name, option.flagsets[0].Lookup(option.name))
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(manholeCmd)
	manholeCmd.AddCommand(planCmd)
	manholeCmd.AddCommand(scheduleCmd)
	Root.AddCommand(treesCmd)
	treesCmd.AddCommand(mergeCmd)
	Root.AddCommand(pipeCmd)
	pipeCmd.AddCommand(layCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets up logging.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("civils: problem reading configuration file: %v", err)
		}
	}
	return setLogging(Cfg.GetString("LogLevel"))
}

func setLogging(level string) error {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("civils: invalid LogLevel: %v", err)
	}
	logrus.SetLevel(l)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
	})
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "civils",
	Short: "Civil engineering plan details.",
	Long: `civils generates and checks civil engineering plan details: drainage
manhole plans and schedules, pipe runs laid to a gradient, and the merged
tree root influence zones used in foundation design.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'CIVILS_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of civils.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("civils v%s\n", civils.Version)
	},
	DisableAutoGenTag: true,
}

var manholeCmd = &cobra.Command{
	Use:   "manhole",
	Short: "Drainage manhole details.",
	Long: `manhole reads a manhole schedule and its pipe schedule. Use the
subcommands specified below to draw plan details or print the schedule.`,
	DisableAutoGenTag: true,
}

// planCmd draws a plan detail for each manhole in a schedule.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Draw manhole plan details.",
	Long: `plan draws a plan detail for every adoptable manhole in the schedule,
spaced along +X. A manhole that cannot be drawn is reported and the rest
are still drawn.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Plan(
			Cfg.GetString("Manholes"),
			Cfg.GetString("Pipes"),
			Cfg.GetString("Output"),
			Cfg.GetInt("Benching.Minor"),
			Cfg.GetInt("Benching.Major"),
			Cfg.GetFloat64("Spacing"),
		)
	},
	DisableAutoGenTag: true,
}

// scheduleCmd writes the manhole schedule table.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Write the manhole schedule.",
	Long: `schedule writes the schedule table of every manhole in the schedule
files as CSV.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Schedule(
			cmd.OutOrStdout(),
			Cfg.GetString("Manholes"),
			Cfg.GetString("Pipes"),
			Cfg.GetString("Output"),
			Cfg.GetInt("Benching.Minor"),
			Cfg.GetInt("Benching.Major"),
		)
	},
	DisableAutoGenTag: true,
}

var treesCmd = &cobra.Command{
	Use:   "trees",
	Short: "Tree root influence zones.",
	Long: `trees works with the trees recorded in a site file. Use the
subcommands specified below.`,
	DisableAutoGenTag: true,
}

// mergeCmd draws the merged tree rings of a site.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Draw merged tree rings.",
	Long: `merge draws the foundation depth rings of every tree on a site,
merging rings of the same depth that cross each other. Each depth is
committed to the drawing before the next is started.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return MergeTrees(Cfg.GetString("Site"), Cfg.GetString("Output"))
	},
	DisableAutoGenTag: true,
}

var pipeCmd = &cobra.Command{
	Use:               "pipe",
	Short:             "Drainage pipe runs.",
	DisableAutoGenTag: true,
}

// layCmd lays a pipe run to a gradient.
var layCmd = &cobra.Command{
	Use:   "lay",
	Short: "Lay a pipe to a gradient.",
	Long: `lay draws a straight pipe run falling at the given gradient and
labels it with its gradient and invert levels.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := LayPipe(
			Cfg.GetString("Pipe.Start"),
			Cfg.GetString("Pipe.End"),
			Cfg.GetFloat64("Pipe.Invert"),
			Cfg.GetInt("Pipe.Gradient"),
			Cfg.GetString("Pipe.Name"),
			Cfg.GetString("Output"),
		)
		if err != nil {
			return err
		}
		cmd.Printf("fall %.3f, end invert %.3f\n", run.Fall, run.End.Z)
		return nil
	},
	DisableAutoGenTag: true,
}
