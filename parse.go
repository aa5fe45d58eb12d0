package emdiff

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-yaml/yaml"
	"github.com/spf13/pflag"
)

type options struct {
	options []ConfigOption
	err     error
}

// ParseCommandLine configures a run from command line options or from a YAML
// configuration file passed with the -c flag.  Returns the positional
// arguments (the two event log files) and a slice of functional options that
// can be applied to the configuration.
func ParseCommandLine() ([]string, []ConfigOption, error) {
	pf := createFlagSet()
	return parse(os.Args[1:], pf)
}

func parse(args []string, pf *pflag.FlagSet) ([]string, []ConfigOption, error) {
	options := options{}
	if err := pf.ParseAll(args, parseFlag(&options)); err != nil {
		return pf.Args(), options.options, err
	}
	return pf.Args(), options.options, options.err
}

func createFlagSet() *pflag.FlagSet {
	pf := pflag.NewFlagSet("emdiff", pflag.ContinueOnError)
	pf.Usage = func() {
		fmt.Printf("Usage of emdiff:\nemdiff <options> log1.json log2.json\n")
		fmt.Printf("\n%s", pf.FlagUsagesWrapped(10))
	}

	pf.StringP("config", "c", "", "Use yaml configuration file")
	pf.StringP("test", "t", TestPermutation, "Hypothesis test to run: permutation or bootstrap")
	pf.StringP("representation", "r", RepresentationControlFlow, "Behavioral representation: control-flow or timed")
	pf.String("binner", BinnerKMeans, "Service-time discretization for the timed representation: kmeans or percentile")
	pf.Int("distribution-size", 1000, "Number of resampling iterations used to build the null distribution")
	pf.Int("resample-size", 0, "Bootstrap sample size.  Defaults to the number of traces in the first log.")
	pf.String("seed", "", "Fix the resampling RNG seed for reproducible results")
	pf.Float64("percentile", 25, "Lower percentile threshold of the percentile binner; the upper threshold is its mirror at 100-p")
	pf.Int("k", 3, "Number of k-means bins")
	pf.Int("kmeans-max-iter", 100, "Iteration bound for k-means binner training")
	pf.Int("emd-iterations", 10000, "Simplex pivot budget for each EMD computation")
	pf.Int("workers", 0, "Number of goroutines for distance-matrix construction.  0 uses all CPUs.")
	pf.StringP("out", "o", "", "Write the result as JSON to this path instead of stdout.  A .gz suffix enables compression.")
	pf.BoolP("quiet", "q", false, "Suppress progress output")

	return pf
}

func parseFlag(o *options) func(*pflag.Flag, string) error {
	return func(flag *pflag.Flag, value string) error {
		switch flag.Name {
		case "config":
			opts, err := parseFromFile(value)
			if err != nil {
				o.err = err
				return err
			}
			o.options = append(o.options, opts...)
		default:
			option, err := handleOption(flag.Name, value)
			if err != nil {
				o.err = err
				return err
			}
			o.options = append(o.options, option)
		}
		return nil
	}
}

func handleOption(name string, value string) (ConfigOption, error) {
	switch name {
	case "test":
		return Test(value), nil
	case "representation":
		return Representation(value), nil
	case "binner":
		return Binner(value), nil
	case "distribution-size":
		return DistributionSize(value), nil
	case "resample-size":
		return ResampleSize(value), nil
	case "seed":
		return Seed(value), nil
	case "percentile":
		return Percentile(value), nil
	case "k":
		return K(value), nil
	case "kmeans-max-iter":
		return KMeansIterations(value), nil
	case "emd-iterations":
		return EMDIterations(value), nil
	case "workers":
		return Workers(value), nil
	case "out":
		return Out(value), nil
	case "quiet":
		return Quiet(), nil
	default:
		return nil, fmt.Errorf("unknown option: %s", name)
	}
}

func parseFromFile(fpath string) ([]ConfigOption, error) {
	var options []ConfigOption
	data, err := os.ReadFile(fpath)
	if err != nil {
		return options, err
	}

	cfg := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return options, err
	}
	for k, v := range cfg {
		var value string
		switch v := v.(type) {
		case string:
			value = v
		case int:
			value = strconv.Itoa(v)
		case float64:
			value = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			if !v {
				continue
			}
			value = ""
		default:
			return options, fmt.Errorf("could not process config key %s, unknown type", k)
		}
		opt, err := handleOption(k, value)
		if err != nil {
			return options, err
		}
		options = append(options, opt)
	}
	return options, nil
}
