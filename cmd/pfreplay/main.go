// Command pfreplay sends a recorded frame stream to a pixelflow server, or
// prints it.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb"
	logging "github.com/op/go-logging"
	"github.com/specht/pixelflow-canvas/canvas"
	"github.com/specht/pixelflow-canvas/pfclient"
	"golang.org/x/time/rate"
)

var log = logging.MustGetLogger("pfreplay")

var (
	in      = flag.String("in", "", "path to a recording made with the record config option")
	addr    = flag.String("addr", pfclient.DefaultAddress, "server address, host:port or ws:// URL")
	fps     = flag.Float64("fps", 0, "limit Flush frames to this rate (0 replays as fast as possible)")
	timeout = flag.Duration("timeout", 5*time.Second, "dial timeout")
	dump    = flag.Bool("dump", false, "print the frames instead of sending them")
)

func main() {
	flag.Parse()
	if *in == "" {
		flag.Usage()
		fmt.Println("\n--in is required")
		os.Exit(1)
	}
	canvas.ConfigureLogging()

	// Open input file and start streaming progress to stdout.
	var fr *pfclient.FrameReader
	{
		fi, err := os.Stat(*in)
		check(err)
		bar := pb.New64(fi.Size())
		bar.SetMaxWidth(100)
		bar.SetUnits(pb.U_BYTES)
		if *dump {
			bar.Output = os.Stderr
		}
		bar.Start()
		defer bar.FinishPrint("")

		f, err := os.Open(*in)
		check(err)
		defer f.Close()
		fr = pfclient.NewFrameReader(bufio.NewReader(bar.NewProxyReader(f)))
	}

	var conn *pfclient.ClientConn
	if !*dump {
		t, err := pfclient.Dial(context.Background(), *addr, *timeout)
		check(err)
		conn = pfclient.Client(t)
		defer conn.Close()
	}

	var limiter *rate.Limiter
	if *fps > 0 {
		limiter = rate.NewLimiter(rate.Limit(*fps), 1)
	}

	frames := 0
	for {
		msg, err := fr.Next()
		if err == io.EOF {
			break
		}
		check(err)
		frames++

		if *dump {
			fmt.Println(dumpLine(frames, msg))
			continue
		}
		if limiter != nil && msg.Type() == pfclient.OpFlush {
			check(limiter.Wait(context.Background()))
		}
		check(conn.Send(msg))
	}
	log.Infof("replayed %d frames, canvas ended at %dx%d %v", frames, fr.Width, fr.Height, fr.ColorMode)
}

// dumpLine describes the n-th frame and its bytes as sent on the wire.
func dumpLine(n int, msg pfclient.ClientMessage) string {
	return fmt.Sprintf("%d\t%T%+v\t% x", n, msg, msg, pfclient.Encode(msg))
}

func check(err error) {
	if err != nil {
		log.Fatalf("%+v", err)
	}
}
