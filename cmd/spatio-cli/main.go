// Command spatio-cli is the spatio client: it sends one RESP command and
// exits, or (with -i) drops into an interactive bubbletea REPL.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kass/spatio/internal/resp"
)

var (
	host        string
	port        int
	interactive bool
)

var rootCmd = &cobra.Command{
	Use:   "spatio-cli [command] [args...]",
	Short: "spatio-cli talks to a spatio server over RESP",
	RunE:  run,
	Args:  cobra.ArbitraryArgs,
}

func init() {
	rootCmd.Flags().StringVar(&host, "host", "127.0.0.1", "server host")
	rootCmd.Flags().IntVarP(&port, "port", "p", 9851, "server port")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "enter an interactive REPL")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))

	if interactive {
		return runREPL(addr)
	}

	if len(args) == 0 {
		return fmt.Errorf("no command given; pass one or use -i for an interactive session")
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		os.Exit(1)
		return err
	}
	defer conn.Close()

	response, err := sendCommand(conn, args)
	if err != nil {
		os.Exit(1)
		return err
	}
	fmt.Println(formatValue(response))
	return nil
}

func sendCommand(conn net.Conn, args []string) (resp.Value, error) {
	if len(args) == 0 {
		return resp.Value{}, fmt.Errorf("empty command")
	}
	items := make([]resp.Value, len(args))
	for i, a := range args {
		items[i] = resp.NewBulkString(a)
	}
	frame := resp.Serialize(resp.NewArray(items))
	if _, err := conn.Write([]byte(frame)); err != nil {
		return resp.Value{}, err
	}
	return resp.Parse(bufio.NewReader(conn))
}

func formatValue(v resp.Value) string {
	switch v.Kind {
	case resp.SimpleString:
		return v.Str
	case resp.Error:
		return "(error) " + v.Str
	case resp.Integer:
		return fmt.Sprintf("(integer) %d", v.Int)
	case resp.BulkString:
		if v.Null {
			return "(nil)"
		}
		return v.Str
	case resp.Array:
		if v.Null {
			return "(empty array)"
		}
		lines := make([]string, len(v.Items))
		for i, item := range v.Items {
			lines[i] = fmt.Sprintf("%d) %s", i+1, formatValue(item))
		}
		return strings.Join(lines, "\n")
	default:
		return ""
	}
}
