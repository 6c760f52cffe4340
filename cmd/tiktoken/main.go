// Command tiktoken encodes and decodes text against the built-in
// tokenizer encodings from the command line.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	tiktoken "github.com/kaelbrook/tiktoken-go"
)

func die(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	var encodingName, modelName string

	resolve := func() (*tiktoken.Encoding, error) {
		if modelName != "" {
			return tiktoken.ForModel(modelName)
		}
		if encodingName == "" {
			encodingName = "cl100k_base"
		}
		return tiktoken.NewEncoding(encodingName)
	}

	root := &cobra.Command{
		Use:   "tiktoken",
		Short: "encode and decode text against an OpenAI-compatible BPE encoding",
	}
	root.PersistentFlags().StringVar(&encodingName, "encoding", "", "encoding name (gpt2, r50k_base, p50k_base, p50k_edit, cl100k_base)")
	root.PersistentFlags().StringVar(&modelName, "model", "", "resolve the encoding from a model name instead of --encoding")

	var allowSpecial bool
	encodeCmd := &cobra.Command{
		Use:   "encode [text]",
		Short: "encode text (or stdin) to token ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := resolve()
			if err != nil {
				return err
			}
			text, err := readInput(args)
			if err != nil {
				return err
			}
			var toks []uint32
			if allowSpecial {
				toks, err = enc.Encode(text, tiktoken.AllSpecials(), tiktoken.NoSpecials())
			} else {
				toks, err = enc.EncodeOrdinary(text)
			}
			if err != nil {
				return err
			}
			return json.NewEncoder(os.Stdout).Encode(toks)
		},
	}
	encodeCmd.Flags().BoolVar(&allowSpecial, "allow-special", false, "recognize special tokens in the input text")

	var decodePolicy string
	decodeCmd := &cobra.Command{
		Use:   "decode [ids...]",
		Short: "decode token ids (JSON array on stdin, or as arguments) back to text",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := resolve()
			if err != nil {
				return err
			}
			toks, err := readTokens(args)
			if err != nil {
				return err
			}
			policy, err := parsePolicy(decodePolicy)
			if err != nil {
				return err
			}
			s, err := enc.Decode(toks, policy)
			if err != nil {
				return err
			}
			fmt.Println(s)
			return nil
		},
	}
	decodeCmd.Flags().StringVar(&decodePolicy, "on-invalid", "strict", "strict|replace|ignore|backslash")

	countCmd := &cobra.Command{
		Use:   "count [text]",
		Short: "print the number of tokens text (or stdin) encodes to",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := resolve()
			if err != nil {
				return err
			}
			text, err := readInput(args)
			if err != nil {
				return err
			}
			toks, err := enc.EncodeOrdinary(text)
			if err != nil {
				return err
			}
			fmt.Println(len(toks))
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list-encodings",
		Short: "list every built-in encoding name",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range tiktoken.EncodingNames() {
				fmt.Println(name)
			}
			return nil
		},
	}

	root.AddCommand(encodeCmd, decodeCmd, countCmd, listCmd)
	if err := root.Execute(); err != nil {
		die(err)
	}
}

func readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func readTokens(args []string) ([]uint32, error) {
	if len(args) > 0 {
		out := make([]uint32, len(args))
		for i, a := range args {
			v, err := strconv.ParseUint(a, 10, 32)
			if err != nil {
				return nil, err
			}
			out[i] = uint32(v)
		}
		return out, nil
	}
	var toks []uint32
	if err := json.NewDecoder(os.Stdin).Decode(&toks); err != nil {
		return nil, err
	}
	return toks, nil
}

func parsePolicy(s string) (tiktoken.DecodePolicy, error) {
	switch s {
	case "strict", "":
		return tiktoken.DecodeStrict, nil
	case "replace":
		return tiktoken.DecodeReplace, nil
	case "ignore":
		return tiktoken.DecodeIgnore, nil
	case "backslash":
		return tiktoken.DecodeBackslashEscape, nil
	default:
		return 0, fmt.Errorf("unknown --on-invalid policy %q", s)
	}
}
