// token emite un JWT de operador firmado con JWT_SECRET para llamar a la API.
//
// Uso: go run ./cmd/token -user caja-1 -role cajero [-minutes 480]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Restaurante-api/pkg/config"
	"github.com/jhoicas/Restaurante-api/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "identificador del operador (requerido)")
	role := flag.String("role", jwt.RoleCashier, "rol: admin | cajero")
	minutes := flag.Int("minutes", 0, "vigencia en minutos (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "-user es requerido")
		flag.Usage()
		os.Exit(2)
	}
	if *role != jwt.RoleAdmin && *role != jwt.RoleCashier {
		fmt.Fprintf(os.Stderr, "rol inválido %q (admin | cajero)\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	exp := cfg.JWT.Expiration
	if *minutes > 0 {
		exp = *minutes
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *userID, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
