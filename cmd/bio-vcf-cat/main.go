package main

// See doc.go for documentation
import (
	"flag"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/honeybee/vcfcat"
)

var (
	outputFlag = flag.String("output", "", "Path of the concatenated VCF file. Existing contents are replaced.")
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	flag.Usage = func() {
		os.Stderr.WriteString(`Usage: bio-vcf-cat -output <out.vcf> [in.vcf...]

Writes the bytes of each input, in order, to <out.vcf>. With no inputs, an
empty file is written.
`)
		flag.PrintDefaults()
	}
	shutdown := grail.Init()
	defer shutdown()

	if *outputFlag == "" {
		flag.Usage()
		os.Exit(2)
	}
	inputs := flag.Args()
	if err := vcfcat.Concat(vcontext.Background(), *outputFlag, inputs); err != nil {
		log.Error.Printf("concatenate %v to %v: %v", inputs, *outputFlag, err)
		shutdown()
		os.Exit(1)
	}
	log.Printf("concatenated %d files to %s", len(inputs), *outputFlag)
}
