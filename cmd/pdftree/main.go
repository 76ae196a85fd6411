// Pdftree inspects how a PDF document's internal structure looks.
//
// Usage:
//
//	pdftree [-v] [-debug] file.pdf info
//	pdftree [-v] [-debug] file.pdf tree [flags]
//	pdftree [-v] [-debug] file.pdf structure
//
// The info command prints a one-screen summary of the file. The tree
// command walks the object graph from the trailer and prints it as a
// tree; run "pdftree file.pdf tree -help" for its flags. The structure
// command dumps every indirect object in PDF syntax, in object number
// order.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/njupg/pdftree"
	"github.com/njupg/pdftree/internal/term"
	xterm "golang.org/x/term"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: pdftree [-v] [-debug] file.pdf {info|tree|structure} [flags]\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	verbose := flag.Bool("v", false, "verbose logging")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Usage = usage
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	args := flag.Args()
	if len(args) < 2 {
		usage()
	}
	path, cmd := args[0], args[1]

	doc, err := pdftree.Open(path)
	if err != nil {
		slog.Error("cannot load document", "err", err)
		os.Exit(1)
	}

	switch cmd {
	case "info":
		runInfo(doc)
	case "tree":
		runTree(doc, path, args[2:])
	case "structure":
		runStructure(doc)
	default:
		fmt.Fprintf(os.Stderr, "pdftree: unknown command %q\n", cmd)
		usage()
	}
}

func runInfo(doc *pdftree.Document) {
	info := doc.Info()
	fmt.Println("--- PDF Info ---")
	fmt.Printf("Version: %s\n", info.Version)
	fmt.Printf("Trailer: %s\n", info.Trailer)
	fmt.Printf("Reference Table size: %d\n", info.XRefSize)
	fmt.Printf("Objects amount: %d\n", info.Objects)
	fmt.Printf("Max Object Id: %d\n", info.MaxObjectID)
	fmt.Printf("Encrypted: %t\n", info.Encrypted)
}

// treeFlags holds the tree subcommand's flag values. Numeric and boolean
// defaults come from the library option structs, so the flags cannot
// drift from what BuildTree and Render use when a flag is not given.
type treeFlags struct {
	maxDepth     *int
	expand       *string
	typeNames    *bool
	arrayLimit   *int
	hexLimit     *int
	streams      *string
	forceStreams *bool
	fonts        *bool
	hideLegend   *bool
	lineNumbers  *bool
	color        *string
}

func newTreeFlags(fs *flag.FlagSet) *treeFlags {
	topts := pdftree.DefaultTreeOptions()
	ropts := pdftree.DefaultRenderOptions()
	return &treeFlags{
		maxDepth:     fs.Int("max-depth", topts.MaxDepth, "how deep the tree should be printed (0 = unlimited)"),
		expand:       fs.String("expand", "", "only expand along this dot-separated path, e.g. Root.Pages.Kids"),
		typeNames:    fs.Bool("type-names", false, "print type names after property names"),
		arrayLimit:   fs.Int("array-limit", topts.ArrayLimit, "max items printed per array (minimum 2, 0 = unlimited)"),
		hexLimit:     fs.Int("hex-limit", ropts.HexLimit, "max bytes printed per hexadecimal string (minimum 2, 0 = unlimited)"),
		streams:      fs.String("streams", "no", "stream payload display: no, hex, or ops"),
		forceStreams: fs.Bool("force-streams", false, "decode operations for all streams, not just content streams"),
		fonts:        fs.Bool("fonts", false, "expand Font dictionaries"),
		hideLegend:   fs.Bool("hide-legend", false, "do not print the legend above the tree"),
		lineNumbers:  fs.Bool("line-numbers", ropts.LineNumbers, "prefix output lines with line numbers"),
		color:        fs.String("color", "auto", "colorize output: auto, on, or off"),
	}
}

func runTree(doc *pdftree.Document, path string, args []string) {
	fs := flag.NewFlagSet("tree", flag.ExitOnError)
	f := newTreeFlags(fs)
	fs.Parse(args)

	paint := false
	switch *f.color {
	case "on":
		paint = true
	case "off":
	case "auto":
		paint = xterm.IsTerminal(int(os.Stdout.Fd()))
	default:
		fmt.Fprintf(os.Stderr, "pdftree: invalid -color value %q\n", *f.color)
		os.Exit(2)
	}

	topts := pdftree.DefaultTreeOptions()
	topts.MaxDepth = *f.maxDepth
	topts.ArrayLimit = *f.arrayLimit
	topts.ExpandFonts = *f.fonts
	topts.ForceStreams = *f.forceStreams
	if *f.expand != "" {
		topts.Expand = strings.Split(*f.expand, ".")
	}
	switch *f.streams {
	case "no":
		topts.Streams = pdftree.StreamNone
	case "hex":
		topts.Streams = pdftree.StreamHex
	case "ops":
		topts.Streams = pdftree.StreamOps
	default:
		fmt.Fprintf(os.Stderr, "pdftree: invalid -streams value %q\n", *f.streams)
		os.Exit(2)
	}

	ropts := pdftree.DefaultRenderOptions()
	ropts.TypeNames = *f.typeNames
	ropts.HexLimit = *f.hexLimit
	ropts.LineNumbers = *f.lineNumbers
	ropts.Color = paint

	if !*f.hideLegend {
		for _, line := range pdftree.Legend(paint) {
			fmt.Println(line)
		}
	}

	name := filepath.Base(path)
	if paint {
		name = term.New(term.Default).Bold().Render(name)
	}
	fmt.Println(name)

	nodes := pdftree.BuildTree(doc.Table, doc.TrailerRoots(), topts)
	for _, line := range pdftree.Render(nodes, ropts) {
		fmt.Println(line)
	}
}

func runStructure(doc *pdftree.Document) {
	ids := make([]pdftree.ObjectID, 0, len(doc.Table))
	for id := range doc.Table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Number != ids[j].Number {
			return ids[i].Number < ids[j].Number
		}
		return ids[i].Generation < ids[j].Generation
	})

	fmt.Printf("%%PDF-%s\n", doc.Version())
	for _, id := range ids {
		v, _ := doc.Table.Resolve(id)
		fmt.Printf("%d %d obj %s\n", id.Number, id.Generation, v)
	}
	fmt.Printf("trailer %s\n", doc.Trailer())
}
