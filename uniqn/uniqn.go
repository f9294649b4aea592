package main

import (
	"fmt"
	"log"
	"os"
	"wordnorm/ng"
	"wordnorm/util"
	"wordnorm/wire"

	"github.com/spf13/cobra"
)

func new_uniqn_cmd() *cobra.Command {
	var dump, from_wire bool

	cmd := &cobra.Command{
		Use:   "uniqn [dictionary]",
		Short: "Count one, two and three word phrases read from stdin",
		Long: `uniqn reads one word per line from standard input (the output of norm)
and prints how often every phrase of up to three consecutive words
occurs, most frequent first. Input ends at EOF or at the first empty
line.

With a dictionary file, words are numbered in dictionary order first,
which fixes the order of equally frequent phrases. -d reads a word list
from standard input and prints it as a sorted dictionary.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dump {
				return ng.Dump_dictionary(cmd.InOrStdin(), cmd.OutOrStdout())
			}

			var dict *ng.Dictionary
			if len(args) == 1 {
				d, err := load_dictionary(args[0])
				if err != nil {
					return err
				}
				dict = d
			}

			var src ng.Word_reader
			if from_wire {
				src = wire.Construct_wirehandler(cmd.InOrStdin(), nil)
			} else {
				src = ng.New_line_reader(cmd.InOrStdin())
			}

			stat := ng.New_statistics(dict)
			if err := stat.Process(src); err != nil {
				return err
			}
			return stat.Write_report(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&dump, "dump", "d", false, "print stdin as a sorted dictionary")
	cmd.Flags().BoolVar(&from_wire, "wire", false, "read the binary stream written by norm --format wire")
	return cmd
}

func load_dictionary(file_name string) (*ng.Dictionary, error) {
	f, err := util.Open_input(file_name)
	if err != nil {
		return nil, fmt.Errorf("invalid dictionary file: %w", err)
	}
	if f != os.Stdin {
		defer f.Close()
	}

	d, err := ng.Load_dictionary(f)
	if err != nil {
		return nil, fmt.Errorf("invalid dictionary file: %w", err)
	}
	return d, nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("uniqn: ")

	if err := new_uniqn_cmd().Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
