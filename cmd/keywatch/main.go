// keywatch prints every keypress as it arrives and optionally runs a
// command for it. It doubles as a demonstration of the keystream library.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"unicode"

	"github.com/kballard/go-shellquote"

	"github.com/JaMo42/keystream"
	. "github.com/JaMo42/keystream/common"
	"github.com/JaMo42/keystream/util"
)

const (
	appName    = "keywatch"
	appVersion = "0.1.0"
)

type Options struct {
	configFile string
	graphemes  bool
	scalars    bool
}

func parseArgs() Options {
	InvocationName = os.Args[0]
	showVersion := false
	var options Options
	flag.StringVar(
		&options.configFile, "config", "",
		"path of the config file to use",
	)
	flag.BoolVar(
		&options.graphemes, "graphemes", false,
		"group keypresses into grapheme clusters",
	)
	flag.BoolVar(
		&options.scalars, "scalars", false,
		"show the scalar value of each input byte",
	)
	flag.BoolVar(
		&showVersion, "version", false,
		"show version information",
	)
	flag.Parse()
	if showVersion {
		fmt.Printf("%s %s\n", appName, appVersion)
		os.Exit(0)
	}
	return options
}

// label returns a printable representation of a chunk, escaping control
// characters.
func label(chunk string) string {
	for _, r := range chunk {
		if !unicode.IsPrint(r) {
			quoted := strconv.Quote(chunk)
			return quoted[1 : len(quoted)-1]
		}
	}
	return chunk
}

// runCommands runs the configured commands for a chunk, stopping at the
// first one that succeeds. %KEY% in a command is replaced by the chunk.
func runCommands(cfg *Config, chunk string) {
	for _, cmd := range cfg.Commands {
		commandLine, err := shellquote.Split(strings.ReplaceAll(cmd, "%KEY%", chunk))
		if err != nil {
			Fatal("syntax error in command: %s", err)
		}
		if exec.Command(commandLine[0], commandLine[1:]...).Run() == nil {
			break
		}
	}
}

// show prints one chunk, with the scalar values of its bytes in a padded
// second column if requested.
func show(cfg *Config, options *Options, chunk string) {
	text := label(chunk)
	if !options.scalars {
		fmt.Println(text)
		return
	}
	scalars := make([]string, 0, len(chunk))
	for _, b := range []byte(chunk) {
		scalars = append(scalars, fmt.Sprintf("%#02x", keystream.Scalar(b)))
	}
	padding := util.FixPrintfPadding(text, cfg.General.LabelWidth)
	fmt.Printf("%-*s %s\n", padding, text, strings.Join(scalars, " "))
}

func main() {
	log.SetFlags(0)
	options := parseArgs()
	cfg := DefaultConfig()
	if len(options.configFile) != 0 {
		cfg = LoadConfig(options.configFile)
	} else {
		configPath().Then(func(pathname string) {
			cfg = LoadConfig(pathname)
		})
	}
	options.graphemes = options.graphemes || cfg.General.Graphemes

	onChunk := func(chunk string) {
		if util.Contains(cfg.Ignore, chunk) {
			return
		}
		show(&cfg, &options, chunk)
		runCommands(&cfg, chunk)
	}
	listener := keystream.Listener(onChunk)
	var joiner *keystream.GraphemeJoiner
	if options.graphemes {
		joiner = keystream.NewGraphemeJoiner(onChunk)
		listener = joiner.Feed
	}

	fmt.Println("Press keys, Ctrl-D quits.")
	if err := keystream.Observe(listener); err != nil {
		Fatal("%s", err)
	}
	keystream.Wait()
	if joiner != nil {
		joiner.Flush()
	}
	if err := keystream.End(); err != nil {
		log.Printf("%s: %s\n", InvocationName, err)
	}
}
