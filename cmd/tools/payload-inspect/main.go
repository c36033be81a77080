// cmd/tools/payload-inspect/main.go
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	commonhttp "lead-webhook/internal/common/http"
	"lead-webhook/internal/leads"
	"lead-webhook/internal/leads/compose"
	"lead-webhook/internal/leads/extract"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) < 1 {
		help(stdout)
		return fmt.Errorf("command is required")
	}

	switch args[0] {
	case "layouts":
		for i, name := range extract.LayoutNames() {
			fmt.Fprintf(stdout, "%d. %s\n", i+1, name)
		}
		return nil

	case "extract":
		cmd := flag.NewFlagSet("extract", flag.ContinueOnError)
		file := cmd.String("file", "-", "Payload file, - for stdin")
		layouts := stringList{}
		cmd.Var(&layouts, "layout", "Restrict the search to this layout (repeatable)")
		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}
		return extractCmd(*file, layouts, stdin, stdout)

	case "render":
		cmd := flag.NewFlagSet("render", flag.ContinueOnError)
		file := cmd.String("file", "-", "Payload file, - for stdin")
		format := cmd.String("format", "text", "Output format: text, html or subject")
		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}
		return renderCmd(*file, *format, stdin, stdout)

	case "send":
		cmd := flag.NewFlagSet("send", flag.ContinueOnError)
		file := cmd.String("file", "-", "Payload file, - for stdin")
		url := cmd.String("url", "http://localhost:3000/webhook", "Webhook URL")
		timeout := cmd.Duration("timeout", 30*time.Second, "Request timeout")
		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}
		return sendCmd(*file, *url, *timeout, stdin, stdout)

	case "help":
		help(stdout)
		return nil

	default:
		help(stdout)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

type inspection struct {
	Layout string       `json:"layout"`
	Fields leads.Fields `json:"fields"`
	Record leads.Record `json:"record"`
}

func extractCmd(file string, layouts []string, stdin io.Reader, stdout io.Writer) error {
	payload, err := readPayload(file, stdin)
	if err != nil {
		return err
	}

	ex, err := extract.NewExtractor(layouts...)
	if err != nil {
		return err
	}

	fields, layout := ex.Locate(payload)
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(inspection{Layout: layout, Fields: fields, Record: leads.NewRecord(fields)})
}

func renderCmd(file, format string, stdin io.Reader, stdout io.Writer) error {
	payload, err := readPayload(file, stdin)
	if err != nil {
		return err
	}

	n := compose.New(compose.Options{}).ComposeNow(leads.NewRecord(extract.Default().Extract(payload)))
	switch format {
	case "text":
		_, err = io.WriteString(stdout, n.Text)
	case "html":
		_, err = io.WriteString(stdout, n.HTML+"\n")
	case "subject":
		_, err = fmt.Fprintln(stdout, n.Subject)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return err
}

func sendCmd(file, url string, timeout time.Duration, stdin io.Reader, stdout io.Writer) error {
	body, err := readFile(file, stdin)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := commonhttp.NewClient(timeout, "payload-inspect").Do(req)
	if err != nil {
		return fmt.Errorf("send payload: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Fprintf(stdout, "%s %s\n%s\n", resp.Status, resp.Header.Get(commonhttp.RequestIDHeader), bytes.TrimSpace(respBody))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}

func readFile(file string, stdin io.Reader) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	return data, nil
}

func readPayload(file string, stdin io.Reader) (interface{}, error) {
	data, err := readFile(file, stdin)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]interface{}{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var payload interface{}
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse payload: %w", err)
	}
	return payload, nil
}

type stringList []string

func (s *stringList) String() string { return fmt.Sprint(*s) }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func help(w io.Writer) {
	fmt.Fprint(w, `
Usage: payload-inspect <command> [flags]

Commands:
  layouts  List the payload layouts in search order
  extract  Show which layout matched and the resulting lead record
  render   Print the notification a payload would produce
  send     POST a payload to a running webhook
  help     Show this help message

Examples:
  payload-inspect extract -file payload.json
  payload-inspect extract -file payload.json -layout analysis.data_collection
  payload-inspect render -file payload.json -format subject
  payload-inspect send -file payload.json -url http://localhost:3000/webhook
`)
}
