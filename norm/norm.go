package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"wordnorm/tk"
	"wordnorm/util"
	"wordnorm/wire"

	"github.com/spf13/cobra"
)

type norm_flags struct {
	strip_marker bool
	marker       string
	format       string
	verbose      bool
	max_word     bool
}

func new_norm_cmd() *cobra.Command {
	var f norm_flags

	cmd := &cobra.Command{
		Use:   "norm <path>",
		Short: "Split a text file into lowercase words, one per line",
		Long: `norm reads a text file and prints every maximal run of letters it
contains, lowercased, on a line of its own. Anything that is not a
letter (digits, punctuation, symbols) separates words. Pass "-" to read
standard input.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run_norm(args[0], f, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&f.strip_marker, "strip-marker", false, "remove footnote markers before splitting")
	cmd.Flags().StringVar(&f.marker, "marker", tk.Footnote_marker, "literal removed by --strip-marker")
	cmd.Flags().StringVar(&f.format, "format", "text", "output format: text or wire")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log a summary to stderr")
	cmd.Flags().BoolVar(&f.max_word, "max-word", false, "log the longest word length to stderr")
	return cmd
}

func run_norm(file_name string, f norm_flags, stdout io.Writer) error {
	if f.format != "text" && f.format != "wire" {
		return fmt.Errorf("unknown format %q", f.format)
	}

	in, err := util.Open_input(file_name)
	if err != nil {
		return err
	}
	if in != os.Stdin {
		defer in.Close()
	}

	out := bufio.NewWriterSize(stdout, 64*1024)
	defer out.Flush()

	tok := tk.Init_tokenizer(tk.Options{Strip_marker: f.strip_marker, Marker: f.marker})
	sc := tk.NewScanner(in, tok)

	var emit tk.Emitter
	var wh *wire.WireHandler
	if f.format == "wire" {
		wh = wire.Construct_wirehandler(nil, out)
		emit = wh.Send_line
	} else {
		emit = tk.Text_emitter(out)
	}

	sum, err := tk.Run(sc, emit)
	if err != nil {
		return fmt.Errorf("%s: %w", file_name, err)
	}
	if wh != nil {
		if err = wh.Finish(); err != nil {
			return err
		}
	}

	if f.verbose {
		log.Printf("%s: %d lines, %d words\n", file_name, sum.Lines, sum.Tokens)
	}
	if f.max_word {
		log.Printf("max word length: %d\n", sum.Max_word)
	}
	return out.Flush()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("norm: ")

	if err := new_norm_cmd().Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
