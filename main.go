package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/thoas/go-funk"

	"github.com/tuan-hoang1/coreos-installer/pkg/copyguard"
	"github.com/tuan-hoang1/coreos-installer/pkg/isoeditor"
)

var Options struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

var commands = []string{"embed", "show", "remove"}

func main() {
	err := envconfig.Process("", &Options)
	if err != nil {
		log.Fatalf("Failed to process config: %v\n", err)
	}
	level, err := log.ParseLevel(Options.LogLevel)
	if err != nil {
		log.Fatalf("Invalid log level %s: %v\n", Options.LogLevel, err)
	}
	log.SetLevel(level)

	if len(os.Args) < 2 || !funk.ContainsString(commands, os.Args[1]) {
		fmt.Fprintf(os.Stderr, "usage: %s embed|show|remove [flags] ISO\n", os.Args[0])
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		log.Fatal(err)
	}
}

func run(command string, args []string) error {
	flags := flag.NewFlagSet(command, flag.ExitOnError)
	var (
		ignitionFile string
		outputPath   string
		force        bool
	)
	switch command {
	case "embed":
		flags.StringVar(&ignitionFile, "ignition-file", "", "embed an ignition config from a file (default: stdin)")
		flags.BoolVar(&force, "force", false, "overwrite an existing embedded config")
		flags.StringVar(&outputPath, "output", "", "write to a new output file instead of modifying in place")
	case "remove":
		flags.StringVar(&outputPath, "output", "", "write to a new output file instead of modifying in place")
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errors.Errorf("%s requires exactly one ISO path", command)
	}

	mode := os.O_RDWR
	if command == "show" {
		mode = os.O_RDONLY
	}
	image, err := os.OpenFile(flags.Arg(0), mode, 0)
	if err != nil {
		return err
	}
	defer image.Close()

	var guard *copyguard.Guard
	defer func() {
		guard.Cleanup()
	}()

	handle := io.ReadWriteSeeker(image)
	if outputPath != "" {
		dest, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer dest.Close()

		guard = copyguard.New(outputPath)
		if err := guard.Copy(image, dest); err != nil {
			return err
		}
		handle = dest
	}

	editor := isoeditor.NewEditor(handle, isoeditor.NewArchiver())

	switch command {
	case "embed":
		config, err := readIgnition(ignitionFile)
		if err != nil {
			return err
		}
		if err := editor.Embed(&isoeditor.IgnitionContent{Config: config}, force); err != nil {
			return err
		}
	case "show":
		if err := editor.Show(os.Stdout); err != nil {
			return err
		}
	case "remove":
		if err := editor.Remove(); err != nil {
			return err
		}
	}

	guard.Finish()
	return nil
}

func readIgnition(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
