/*Command bio-vcf-cat concatenates VCF files byte for byte, in the order
  given on the command line.  The output is created only if every input was
  read; on failure nothing is left at the output path.

  The bundled genotyping workflows run it to join per-region calls.

  Usage: bio-vcf-cat -output calls.vcf regions/chr1.vcf regions/chr2.vcf ...
*/
package main
