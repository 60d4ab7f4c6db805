// Command xmlpdump feeds a file (or stdin) through xmlparse and prints
// the resulting event stream, one line per Start/End/Text/Comment/
// PI/CData/Notation event, indented by nesting depth. It exists to
// exercise the library end-to-end from the command line and as a
// worked example of the Feed/Step driving loop.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firmwaremine/lwxmlp-go/internal/xlog"
	"github.com/firmwaremine/lwxmlp-go/xmlparse"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbose  bool
		ringCap  int
		workCap  int
		chunkLen int
	)
	cmd := &cobra.Command{
		Use:   "xmlpdump [file]",
		Short: "Stream-parse an XML document and print its event trace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := xlog.New(cmd.ErrOrStderr(), verbose)

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			cfg := xmlparse.DefaultConfig()
			if ringCap > 0 {
				cfg.RingCap = ringCap
			}
			if workCap > 0 {
				cfg.WorkCap = workCap
			}

			depth := 0
			out := cmd.OutOrStdout()
			cb := func(p *xmlparse.Parser, ev xmlparse.Event) bool {
				switch ev.Kind {
				case xmlparse.EventEndElement:
					depth--
				}
				indent := strings.Repeat("  ", depth)
				switch ev.Kind {
				case xmlparse.EventStartElement:
					fmt.Fprintf(out, "%s<%s>", indent, ev.ElementName)
					for _, a := range ev.Attrs {
						fmt.Fprintf(out, " %s=%q", a.Name, a.Value)
					}
					fmt.Fprintln(out)
				case xmlparse.EventEndElement:
					fmt.Fprintf(out, "%s</%s>\n", indent, ev.ElementName)
				case xmlparse.EventText:
					fmt.Fprintf(out, "%s#text %q\n", indent, ev.Text)
				case xmlparse.EventCData:
					fmt.Fprintf(out, "%s#cdata %q\n", indent, ev.Text)
				case xmlparse.EventComment:
					fmt.Fprintf(out, "%s#comment %q\n", indent, ev.Comment)
				case xmlparse.EventProcessingInstruction:
					fmt.Fprintf(out, "%s<?%s %s?>\n", indent, ev.PITarget, ev.PIData)
				case xmlparse.EventNotation:
					fmt.Fprintf(out, "%s#notation %q\n", indent, ev.Notation)
				}
				if ev.Kind == xmlparse.EventStartElement {
					depth++
				}
				return true
			}

			p := xmlparse.New(cb, cfg)
			buf := make([]byte, chunkLen)
			for {
				n, rerr := in.Read(buf)
				off := 0
				for off < n {
					written, ferr := p.Feed(buf[off:n])
					if ferr != nil {
						log.Error().Err(ferr).Msg("feed failed")
						return ferr
					}
					if written == 0 && p.FreeSpace() == 0 {
						for p.FreeSpace() == 0 {
							st := p.Step()
							if st == xmlparse.StatusError {
								return p.Err()
							}
						}
						continue
					}
					off += written
				}
				if rerr == io.EOF {
					break
				}
				if rerr != nil {
					return rerr
				}
				for {
					st := p.Step()
					if st == xmlparse.StatusError {
						return p.Err()
					}
					if st == xmlparse.StatusContinueAddingData {
						break
					}
					if st == xmlparse.StatusFinished {
						return nil
					}
				}
			}
			for {
				st := p.Step()
				switch st {
				case xmlparse.StatusError:
					return p.Err()
				case xmlparse.StatusFinished, xmlparse.StatusContinueAddingData:
					return nil
				}
			}
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().IntVar(&ringCap, "ring-cap", 0, "override the parser's ring buffer capacity")
	cmd.Flags().IntVar(&workCap, "work-cap", 0, "override the parser's working buffer capacity")
	cmd.Flags().IntVar(&chunkLen, "chunk", 512, "read chunk size in bytes")
	return cmd
}
