/*Command honeybee-genotype-pipeline calls genotypes of sequencing samples
  against a reference genome by running a bundled Snakemake workflow.

  The command resolves its flags into a workflow configuration, writes the
  bundled Snakefile to a scratch directory and runs snakemake with that
  configuration, --cores set to --threads, locking disabled, and reasons and
  shell commands printed.  It exits with snakemake's exit status.

  The workflows run bwa, samtools, freebayes, bcftools and bio-vcf-cat from
  $PATH; they must be installed next to snakemake.  On SIGINT or SIGTERM
  snakemake is interrupted and the command's scratch files are removed.

  Two workflows are bundled, selected with --workflow:

    multi_sample (default): samples are listed in --samples_csv, a CSV file
    with the columns sample, r1_path and r2_path.  Either --ploidy or
    --cnv_map may be given, not both.  --restart_times is passed to snakemake.

    single_sample: reads are taken from data/reads/{sample}_R{1,2}.fastq.gz.
    Only --ploidy is supported.

  Usage:

    honeybee-genotype-pipeline --ref genome.fa --outdir out \
        --samples_csv samples.csv --threads 16 [-n]

  With -n, snakemake only prints the jobs it would run; nothing under
  --outdir is touched.
*/
package main
