package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/beevik/etree"
	"github.com/getmockd/phonexml/pkg/cli/internal/parse"
	"github.com/spf13/cobra"
	"golang.org/x/net/html/charset"
)

// phoneUserAgent is the agent string of the phones' built-in browser.
const phoneUserAgent = "Allegro-Software-WebClient/4.34"

// maxFetchBody bounds the response size read by fetch.
const maxFetchBody = 1 << 20

var (
	fetchHeaders []string
	fetchQuery   []string
	fetchTimeout time.Duration
	fetchInclude bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Request a screen the way a phone would and print it",
	Long: `Send a GET request to a phonexml endpoint, decode the body according to
its declared character set and print the document indented as UTF-8.`,
	Example: `  # Login form from a local server
  phonexml fetch http://127.0.0.1:3000/

  # Simulate a phone behind a TLS proxy
  phonexml fetch http://127.0.0.1:3000/ --header X-Forwarded-Proto=https --header X-Forwarded-For=203.0.113.7

  # Submit the login form
  phonexml fetch http://127.0.0.1:3000/login --query username=alice --query password=secret`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headers, err := parse.Pairs(fetchHeaders)
		if err != nil {
			return fmt.Errorf("invalid --header: %w", err)
		}
		query, err := parse.Pairs(fetchQuery)
		if err != nil {
			return fmt.Errorf("invalid --query: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
		defer cancel()

		res, err := fetchScreen(ctx, http.DefaultClient, args[0], headers, query)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if fetchInclude {
			fmt.Fprintf(w, "%s\n", res.status)
			keys := make([]string, 0, len(res.header))
			for k := range res.header {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				for _, v := range res.header[k] {
					fmt.Fprintf(w, "%s: %s\n", k, v)
				}
			}
			fmt.Fprintln(w)
		}
		_, err = io.WriteString(w, res.document)
		return err
	},
}

type fetchResult struct {
	status   string
	header   http.Header
	document string
}

// fetchScreen requests rawURL with the given extra headers and query
// parameters and returns the document as indented UTF-8.
func fetchScreen(ctx context.Context, client *http.Client, rawURL string, headers, query map[string]string) (*fetchResult, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid url %q: scheme must be http or https", rawURL)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", phoneUserAgent)
	for k, v := range headers {
		if http.CanonicalHeaderKey(k) == "Host" {
			req.Host = v
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	doc, err := decodeScreen(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	return &fetchResult{status: resp.Status, header: resp.Header, document: doc}, nil
}

// decodeScreen parses an XML body in its declared encoding and re-renders it
// indented with a UTF-8 declaration. Bodies without an XML declaration are
// decoded using the charset of contentType.
func decodeScreen(body []byte, contentType string) (string, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel

	var err error
	if hasDeclaration(body) {
		err = doc.ReadFromBytes(body)
	} else {
		var r io.Reader
		r, err = charset.NewReader(bytes.NewReader(body), contentType)
		if err == nil {
			_, err = doc.ReadFrom(r)
		}
	}
	if err != nil {
		return "", fmt.Errorf("response is not an XML document: %w", err)
	}
	if doc.Root() == nil {
		return "", fmt.Errorf("response has no root element")
	}

	for _, tok := range doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			doc.RemoveChild(pi)
			break
		}
	}
	doc.InsertChildAt(0, etree.NewProcInst("xml", `version="1.0" encoding="UTF-8"`))
	doc.Indent(2)
	return doc.WriteToString()
}

// hasDeclaration reports whether body starts with an XML declaration, after
// an optional byte order mark and leading whitespace.
func hasDeclaration(body []byte) bool {
	body = bytes.TrimPrefix(body, []byte("\xef\xbb\xbf"))
	return bytes.HasPrefix(bytes.TrimLeft(body, " \t\r\n"), []byte("<?xml"))
}

func init() {
	fetchCmd.Flags().StringArrayVarP(&fetchHeaders, "header", "H", nil, "Request header as key=value (repeatable)")
	fetchCmd.Flags().StringArrayVarP(&fetchQuery, "query", "q", nil, "Query parameter as key=value (repeatable)")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 10*time.Second, "Request timeout")
	fetchCmd.Flags().BoolVarP(&fetchInclude, "include", "i", false, "Print the status line and response headers")
	rootCmd.AddCommand(fetchCmd)
}
