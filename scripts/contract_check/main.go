// Command contract_check replays read-only Classroom API calls against the stub and a
// real deployment and reports where statuses or JSON shapes drift apart. Record values
// differ between the two, so bodies are compared by keys and value types only.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type targetFile struct {
	Targets []target `json:"targets"`
}

type side struct {
	name       string
	base       string
	credential string
}

type comparison struct {
	Target         target
	StubStatus     int
	UpstreamStatus int
	StatusMatch    bool
	ShapeDiffs     []string
	Error          error
	DurationStub   time.Duration
	DurationUp     time.Duration
}

func main() {
	var (
		stubBase      string
		upstreamBase  string
		stubToken     string
		upstreamToken string
		cookieName    string
		targetsPath   string
		timeout       time.Duration
	)

	flag.StringVar(&stubBase, "stub-base", "http://localhost:8081/api", "Stub Classroom API base URL")
	flag.StringVar(&upstreamBase, "upstream-base", "", "Real Classroom API base URL")
	flag.StringVar(&stubToken, "stub-token", "", "Credential for the stub")
	flag.StringVar(&upstreamToken, "upstream-token", "", "Credential for the real API")
	flag.StringVar(&cookieName, "cookie", "auth_token", "Credential cookie name")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "contract_check", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	if upstreamBase == "" {
		log.Fatal("-upstream-base is required")
	}

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	stub := side{name: "stub", base: stubBase, credential: stubToken}
	upstream := side{name: "upstream", base: upstreamBase, credential: upstreamToken}

	var (
		results      []comparison
		breaking     int
		optionalDiff int
	)
	for _, t := range targets {
		res := compareTarget(client, cookieName, stub, upstream, t)
		if res.Error != nil || !res.StatusMatch || len(res.ShapeDiffs) > 0 {
			if t.Critical {
				breaking++
			} else {
				optionalDiff++
			}
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

func compareTarget(client *http.Client, cookieName string, stub, upstream side, tgt target) comparison {
	res := comparison{Target: tgt}

	stubStatus, stubBody, stubDur, err := fetch(client, cookieName, stub, tgt)
	if err != nil {
		res.Error = fmt.Errorf("stub request failed: %w", err)
		return res
	}
	upStatus, upBody, upDur, err := fetch(client, cookieName, upstream, tgt)
	if err != nil {
		res.Error = fmt.Errorf("upstream request failed: %w", err)
		return res
	}

	res.StubStatus, res.UpstreamStatus = stubStatus, upStatus
	res.DurationStub, res.DurationUp = stubDur, upDur
	res.StatusMatch = stubStatus == upStatus
	if res.StatusMatch && stubStatus < http.StatusBadRequest {
		res.ShapeDiffs = shapeDiff(stubBody, upBody)
	}
	return res
}

func fetch(client *http.Client, cookieName string, s side, tgt target) (int, []byte, time.Duration, error) {
	if client == nil {
		return 0, nil, 0, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(s.base, "/")+path, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	if s.credential != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: s.credential})
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("read %s body: %w", s.name, err)
	}
	return resp.StatusCode, body, time.Since(start), nil
}

// shapeDiff lists the paths whose presence or JSON type differs between a and b.
func shapeDiff(a, b []byte) []string {
	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return []string{"stub body is not JSON"}
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return []string{"upstream body is not JSON"}
	}
	sa, sb := map[string]string{}, map[string]string{}
	collectShape("$", aj, sa)
	collectShape("$", bj, sb)

	var diffs []string
	for path, kind := range sa {
		other, ok := sb[path]
		switch {
		case !ok:
			diffs = append(diffs, path+" only in stub")
		case other != kind && kind != "null" && other != "null":
			diffs = append(diffs, fmt.Sprintf("%s: stub %s, upstream %s", path, kind, other))
		}
	}
	for path := range sb {
		if _, ok := sa[path]; !ok {
			diffs = append(diffs, path+" only in upstream")
		}
	}
	sort.Strings(diffs)
	return diffs
}

// collectShape records the JSON type of every path. Array elements share the path "[]".
func collectShape(path string, v interface{}, out map[string]string) {
	switch val := v.(type) {
	case map[string]interface{}:
		out[path] = "object"
		for k, child := range val {
			collectShape(path+"."+k, child, out)
		}
	case []interface{}:
		out[path] = "array"
		for _, child := range val {
			collectShape(path+"[]", child, out)
		}
	case string:
		out[path] = "string"
	case float64:
		out[path] = "number"
	case bool:
		out[path] = "bool"
	case nil:
		if _, seen := out[path]; !seen {
			out[path] = "null"
		}
	}
}

func printReport(results []comparison) {
	fmt.Println("Classroom API Contract Report")
	fmt.Println("=============================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.StatusMatch || len(res.ShapeDiffs) > 0 {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		fmt.Printf("  Stub Status: %d (%s)\n", res.StubStatus, res.DurationStub)
		fmt.Printf("  Upstream Status: %d (%s)\n", res.UpstreamStatus, res.DurationUp)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
			continue
		}
		fmt.Printf("  Status match: %t | Critical: %t\n", res.StatusMatch, res.Target.Critical)
		for _, diff := range res.ShapeDiffs {
			fmt.Printf("  - %s\n", diff)
		}
	}
}
