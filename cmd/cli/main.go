// Command examdb is a test client for SQLite3.
//
// It opens (or creates) <NAME>.db, optionally inserts operator-entered
// exam records, and optionally prints the full table contents as a
// column-aligned grid. Supplementary flags move the database file to and
// from remote locations and record it in a local snapshot history.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gotlim/examdb"
	"github.com/gotlim/examdb/core"
	"github.com/gotlim/examdb/ps"
	"github.com/gotlim/examdb/store"
)

const progname = "examdb"

// options holds everything the flag set parses.
type options struct {
	dbName     string
	records    int
	insertMode bool
	selectMode bool
	showHelp   bool

	pushURL  string
	pullURL  string
	snapshot bool
	showLog  bool
	revertID string

	userName  string
	userEmail string

	region    string
	endpoint  string
	accessKey string
	secretKey string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// There were no options.
	if len(args) == 0 {
		usage(stdout)
		return 0
	}

	var opts options
	fs := flag.NewFlagSet(progname, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&opts.dbName, "d", "", "")
	fs.StringVar(&opts.dbName, "database", "", "")
	fs.IntVar(&opts.records, "i", 0, "")
	fs.IntVar(&opts.records, "insert", 0, "")
	fs.BoolVar(&opts.selectMode, "s", false, "")
	fs.BoolVar(&opts.selectMode, "select", false, "")
	fs.BoolVar(&opts.showHelp, "h", false, "")
	fs.BoolVar(&opts.showHelp, "help", false, "")

	fs.StringVar(&opts.pushURL, "push", "", "")
	fs.StringVar(&opts.pullURL, "pull", "", "")
	fs.BoolVar(&opts.snapshot, "snapshot", false, "")
	fs.BoolVar(&opts.showLog, "log", false, "")
	fs.StringVar(&opts.revertID, "revert", "", "")

	fs.StringVar(&opts.userName, "name", progname, "")
	fs.StringVar(&opts.userEmail, "email", "cli@examdb.local", "")

	fs.StringVar(&opts.region, "region", "", "")
	fs.StringVar(&opts.endpoint, "endpoint", "", "")
	fs.StringVar(&opts.accessKey, "access-key", "", "")
	fs.StringVar(&opts.secretKey, "secret-key", "", "")

	if err := fs.Parse(args); err != nil {
		tryHelp(stderr)
		return 1
	}

	if opts.showHelp {
		usage(stdout)
		return 1
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" || f.Name == "insert" {
			opts.insertMode = true
		}
	})

	if opts.insertMode && opts.records < 1 {
		tryHelp(stderr)
		return 1
	}

	if opts.dbName == "" {
		tryHelp(stderr)
		return 1
	}

	return execute(opts, stdin, stdout, stderr)
}

// execute runs the selected modes in order: pull, revert, insert, select,
// push, snapshot, log.
func execute(opts options, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx := context.Background()
	dbPath := opts.dbName + ".db"

	var remoteCfg *store.RemoteConfig
	if opts.region != "" || opts.endpoint != "" || opts.accessKey != "" {
		remoteCfg = &store.RemoteConfig{
			AccessKey: opts.accessKey,
			SecretKey: opts.secretKey,
			Region:    opts.region,
			Endpoint:  opts.endpoint,
		}
	}

	if opts.pullURL != "" {
		if err := store.Pull(ctx, opts.pullURL, dbPath, remoteCfg); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", progname, err)
			return 1
		}
	}

	needHistory := opts.snapshot || opts.showLog || opts.revertID != ""

	var history ps.Persistence
	if needHistory {
		var err error
		history, err = ps.NewFilePersistence(opts.dbName + ".history")
		if err != nil {
			fmt.Fprintf(stderr, "%s: could not open snapshot history: %v\n", progname, err)
			return 1
		}
	}

	if opts.revertID != "" {
		data, err := history.Retrieve(filepath.Base(dbPath), opts.revertID)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", progname, err)
			return 1
		}
		if err := os.WriteFile(dbPath, data, 0644); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", progname, err)
			return 1
		}
	}

	instance, err := examdb.Open(dbPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: could not connect to database %s.\n", progname, opts.dbName)
		return 1
	}
	defer instance.Close()

	if needHistory {
		instance.WithHistory(&history)
	}

	if opts.insertMode {
		if err := runInsert(instance.Session, opts.records, stdin, stdout); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", progname, err)
			return 1
		}
	}

	if opts.selectMode {
		result, err := instance.Session.SelectAll()
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", progname, err)
			return 1
		}
		result.Display(stdout)
	}

	if opts.pushURL != "" {
		if err := store.Push(ctx, dbPath, opts.pushURL, remoteCfg); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", progname, err)
			return 1
		}
	}

	if opts.snapshot {
		identity := core.Identity{Name: opts.userName, Email: opts.userEmail}
		txn, err := instance.Snapshot(identity)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", progname, err)
			return 1
		}
		fmt.Fprintf(stdout, "Recorded snapshot %s\n", txn.Id)
	}

	if opts.showLog {
		transactions, err := instance.History.Transactions()
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", progname, err)
			return 1
		}
		for _, txn := range transactions {
			fmt.Fprintf(stdout, "%s  %s  %s\n", txn.Id, txn.When.Format("2006-01-02 15:04:05"), txn.Author)
		}
	}

	return 0
}

// runInsert prompts for n records on stdin and writes each one
// immediately. Malformed numeric input leaves the field at its default
// value; this mirrors the harness's historical behavior and is not
// corrected here.
func runInsert(session *store.Session, n int, stdin io.Reader, stdout io.Writer) error {
	// Get the number of exams for incrementation.
	count, err := session.Count()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(stdin)

	for i := 1; i <= n; i++ {
		var exam core.Exam
		exam.Id = uint64(count) + uint64(i)

		fmt.Fprint(stdout, "Exam name: ")
		exam.Name = readLine(reader)

		fmt.Fprint(stdout, "Exam price: ")
		if v, err := strconv.ParseFloat(readToken(reader), 64); err == nil {
			exam.Price = v
		}

		fmt.Fprint(stdout, "Is edited? (1/0) ")
		if v, err := strconv.ParseUint(readToken(reader), 10, 16); err == nil {
			exam.IsEdited = uint16(v)
		}

		fmt.Fprint(stdout, "Is deleted? (1/0) ")
		if v, err := strconv.ParseUint(readToken(reader), 10, 16); err == nil {
			exam.IsDeleted = uint16(v)
		}

		if _, err := session.Insert(exam); err != nil {
			return err
		}
	}

	return nil
}

// readLine reads one full input line, without the trailing newline.
func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// readToken reads one whitespace-trimmed input line.
func readToken(reader *bufio.Reader) string {
	return strings.TrimSpace(readLine(reader))
}

func tryHelp(w io.Writer) {
	fmt.Fprintf(w, "Try '%s --help' for more information.\n", progname)
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage: %s -d NAME [OPTION] RECORDS
Test client for SQLite3.

Mandatory arguments to long options are mandatory for short options too.
  -d, --database         selects the database to work with
  -i, --insert=n         insert n records into database NAME
  -s, --select           select all records in database NAME
      --pull=URL         download NAME.db from URL before opening it
      --push=URL         upload NAME.db to URL after the run
      --snapshot         record NAME.db in the local snapshot history
      --log              list recorded snapshots, newest first
      --revert=ID        restore NAME.db from snapshot ID
      --name=NAME        author name for snapshot commits
      --email=EMAIL      author email for snapshot commits
      --region=REGION    AWS region for s3:// URLs
      --endpoint=URL     custom S3-compatible endpoint
      --access-key=KEY   static S3 access key
      --secret-key=KEY   static S3 secret key

Arguments:
  NAME                   The name of the database to work with
  RECORDS                Positive number of records to work with

URLs may use the s3://, http://, https://, or file:// schemes, or be
plain local paths. Pushing to http(s):// is not supported.
`, progname)
}
