// billparse reads OCR text from a file or stdin and prints the structured
// bill as indented JSON. Useful for tuning the extraction heuristics
// against sample transcriptions.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"billscan/internal/extract"
)

func main() {
	tolerance := flag.Float64("tolerance", extract.DefaultMathTolerance, "line item arithmetic tolerance")
	minNumbers := flag.Int("min-numbers", extract.DefaultMinItemNumbers, "minimum numbers on a line to treat it as an item")
	flag.Parse()

	var text []byte
	var err error
	if flag.NArg() > 0 {
		text, err = os.ReadFile(flag.Arg(0))
	} else {
		text, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatalf("reading input: %v", err)
	}

	parser := extract.NewParser(extract.Options{
		MathTolerance:  *tolerance,
		MinItemNumbers: *minNumbers,
	})

	out, err := json.MarshalIndent(parser.Parse(string(text)), "", "  ")
	if err != nil {
		log.Fatalf("encoding output: %v", err)
	}
	fmt.Println(string(out))
}
