package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/sieve"
	"github.com/aretw0/sieve/pkg/core"
)

// Configuração do Spike
const (
	NumFiles    = 100
	WorkerCount = 100
)

func main() {
	log.Println("⚡ Iniciando Spike: Sieve Concurrency Test")

	// 1. Setup do Diretório Temporário
	tmpDir, err := os.MkdirTemp("", "sieve-spike-*")
	if err != nil {
		log.Fatalf("Erro ao criar temp dir: %v", err)
	}
	// Limpeza no final (comentado para inspeção se falhar, descomentar para produção)
	// defer os.RemoveAll(tmpDir)

	log.Printf("📂 Diretório de trabalho: %s", tmpDir)

	// 2. Popular o vault: metade das notas com tipo errado de propósito
	schemaDoc := "types:\n  id: number\n  timestamp: datetime\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "types.yaml"), []byte(schemaDoc), 0644); err != nil {
		log.Fatalf("Erro ao escrever schema: %v", err)
	}
	for i := 0; i < NumFiles; i++ {
		id := fmt.Sprintf("%d", i)
		if i%2 == 0 {
			id = fmt.Sprintf("nota-%d", i) // texto onde se espera number
		}
		content := fmt.Sprintf("---\nid: %s\ntimestamp: %s\n---\n# Nota %d\nConteúdo de teste para o spike.", id, time.Now().Format(time.RFC3339), i)
		filename := filepath.Join(tmpDir, fmt.Sprintf("note_%d.md", i))
		if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
			log.Fatalf("Erro ao escrever nota: %v", err)
		}
	}

	// 3. Serviço compartilhado: cache é um mapa mutável único.
	// A hipótese do spike: validações concorrentes do mesmo vault podem se
	// sobrepor sem lock de deduplicação, pois updates perdidos são inofensivos
	// (o resultado é função pura do arquivo).
	service, err := sieve.New(tmpDir)
	if err != nil {
		log.Fatalf("Erro ao iniciar sieve: %v", err)
	}

	start := time.Now()

	// 4. Execução Concorrente
	var wg sync.WaitGroup
	wg.Add(WorkerCount)

	results := make([][]core.RecordReport, WorkerCount)
	for i := 0; i < WorkerCount; i++ {
		go func(worker int) {
			defer wg.Done()

			reports, err := service.CheckVault(context.Background(), false)
			if err != nil {
				log.Printf("[Erro] Worker %d: %v", worker, err)
				return
			}
			results[worker] = reports
		}(i)
	}

	wg.Wait()
	duration := time.Since(start)

	// 5. Validação Final
	log.Println("🏁 Todas as goroutines finalizaram.")
	log.Printf("⏱️  Tempo Total: %v", duration)
	log.Printf("⚡ Throughput: %.2f varreduras/seg", float64(WorkerCount)/duration.Seconds())

	// Todos os workers devem enxergar exatamente o mesmo resultado
	want := NumFiles / 2
	for worker, reports := range results {
		if len(reports) != want {
			log.Fatalf("❌ FALHA: Worker %d viu %d relatórios (esperado %d)", worker, len(reports), want)
		}
	}
	log.Printf("✅ SUCESSO: %d workers concordam (%d arquivos com problemas).", WorkerCount, want)

	// Cache deve conter uma entrada por arquivo, sem duplicatas
	// (o types.yaml também é varrido, por isso o +1)
	cacheLen := service.Checker().Cache().Len()
	if cacheLen != NumFiles+1 {
		log.Fatalf("❌ FALHA: Cache com %d entradas (esperado %d)", cacheLen, NumFiles+1)
	}
	hits, misses := service.Checker().Cache().Stats()
	log.Printf("📊 Cache: %d entradas, %d hits, %d misses", cacheLen, hits, misses)
}
