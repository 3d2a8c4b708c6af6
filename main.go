package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/davecheney/profile"
	"github.com/sirupsen/logrus"

	flag "github.com/docker/docker/pkg/mflag"

	"github.com/wlattner/xcsf/xcsf"
)

var (
	// model/prediction files
	predictFile = flag.String([]string{"p", "-predictions"}, "", "file to output predictions")
	modelFile   = flag.String([]string{"f", "-final_model"}, "xcsf.model", "file to output fitted model")
	// data params
	yCols     = flag.Int([]string{"y", "-target_cols"}, 1, "number of trailing target columns in the csv")
	trainFrac = flag.Float64([]string{"-train_frac"}, 0.5, "leading fraction of rows used for training, remainder for testing")
	ordered   = flag.Bool([]string{"-ordered"}, false, "walk rows in order instead of sampling them uniformly")
	// runtime params
	logLevel   = flag.String([]string{"l", "-log_level"}, "info", "log level (debug, info, warn, error)")
	runProfile = flag.Bool([]string{"-profile"}, false, "cpu profile")
)

func main() {
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		fatal("invalid log level", *logLevel)
	}
	logrus.SetLevel(level)

	// usage: xcsf input.csv [config.ini]
	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintf(os.Stderr, "Usage: xcsf [options] input.csv [config.ini]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	params := xcsf.DefaultParams()
	if len(args) > 1 {
		if err := params.LoadConfig(args[1]); err != nil {
			fatal("error reading config", err.Error())
		}
	}

	f, err := os.Open(args[0])
	if err != nil {
		fatal("error opening data file", err.Error())
	}
	defer f.Close()

	if *runProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	// consider non-blank *predictFile as prediction, fit otherwise
	if *predictFile != "" {
		predict(f, args[0])
	} else {
		fit(f, params)
	}
}

func fit(f io.Reader, params xcsf.Params) {
	d, err := parseCSV(f, *yCols)
	if err != nil {
		fatal("error parsing input data", err.Error())
	}
	if len(d.X) < 2 {
		fatal("need at least two rows to split into train and test")
	}

	trainX, trainY, testX, testY := splitTrainTest(d, *trainFrac)

	m, err := NewModel(len(trainX[0]), *yCols, params, d.VarNames)
	if err != nil {
		fatal("error initialising model", err.Error())
	}

	start := time.Now()
	if err := m.Sys.FitTest(trainX, trainY, testX, testY, !*ordered); err != nil {
		fatal("error fitting model", err.Error())
	}
	logrus.WithFields(logrus.Fields{
		"seconds": time.Since(start).Seconds(),
		"pop_num": m.Sys.PopNum,
	}).Info("fit complete")

	out, err := os.Create(*modelFile)
	if err != nil {
		fatal("error creating", *modelFile, err.Error())
	}

	if err := m.Save(out); err != nil {
		fatal("error writing model to", *modelFile, err.Error())
	}

	if err := out.Close(); err != nil {
		fatal("error writing model to", *modelFile, err.Error())
	}
}

func predict(f io.Reader, name string) {
	m, err := loadModel(*modelFile)
	if err != nil {
		fatal("error opening model file", err.Error())
	}

	d, err := parseCSV(f, 0)
	if err != nil {
		fatal("error parsing", name, err.Error())
	}

	pred, err := m.Sys.Predict(d.X)
	if err != nil {
		fatal("error predicting", err.Error())
	}

	out, err := os.Create(*predictFile)
	if err != nil {
		fatal("error creating", *predictFile, err.Error())
	}
	defer out.Close()

	if err := writePred(out, pred); err != nil {
		fatal("error writing", *predictFile, err.Error())
	}
}

func writePred(w io.Writer, prediction [][]float64) error {
	wtr := bufio.NewWriter(w)

	for _, row := range prediction {
		for i, v := range row {
			if i > 0 {
				if err := wtr.WriteByte(','); err != nil {
					return err
				}
			}
			if _, err := wtr.WriteString(strconv.FormatFloat(v, 'f', -1, 64)); err != nil {
				return err
			}
		}
		if err := wtr.WriteByte('\n'); err != nil {
			return err
		}
	}

	return wtr.Flush()
}

func fatal(msg ...interface{}) {
	fmt.Fprintln(os.Stderr, msg...)
	os.Exit(1)
}
