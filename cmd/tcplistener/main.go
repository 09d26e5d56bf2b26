// Command tcplistener prints every request head it receives and echoes it
// back as text/plain. It is a debugging aid for the request parser.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/Brownie44l1/simplehttp/internal/request"
	"github.com/Brownie44l1/simplehttp/internal/response"
)

func main() {
	addr := flag.String("addr", ":42069", "address to listen on")
	flag.Parse()

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer listener.Close()
	fmt.Printf("Listening on %s...\n", listener.Addr())

	for {
		conn, err := listener.Accept()
		if err != nil {
			fmt.Println("Accept error:", err)
			continue
		}

		go handleConnection(conn)
	}
}

func handleConnection(conn net.Conn) {
	defer conn.Close()

	w := response.NewWriter(conn)

	req, err := request.RequestFromReader(conn)
	if err != nil {
		fmt.Println("bad request:", err)
		w.ErrorResponse(response.StatusBadRequest, err.Error())
		return
	}

	dump := describe(req)
	fmt.Print(dump)

	w.TextResponse(response.StatusOK, dump)
}

func describe(req *request.Request) string {
	var b strings.Builder

	b.WriteString("Request line:\n")
	fmt.Fprintf(&b, "- Method: %s\n", req.Method)
	fmt.Fprintf(&b, "- Target: %s\n", req.Target)
	fmt.Fprintf(&b, "- Path: %s\n", req.Path)
	fmt.Fprintf(&b, "- Version: %s\n", req.Version)

	if req.Query.Len() > 0 {
		b.WriteString("Query:\n")
		for _, key := range req.Query.Keys() {
			for _, value := range req.Query.GetAll(key) {
				fmt.Fprintf(&b, "- %s: %s\n", key, value)
			}
		}
	}

	b.WriteString("Headers:\n")
	req.Headers.Each(func(name, value string) {
		fmt.Fprintf(&b, "- %s: %s\n", name, value)
	})

	return b.String()
}
