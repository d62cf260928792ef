// Tagvet - Terraform plan tag policy checker
// Parse. Check. Gate.
package main

func main() {
	Execute()
}
