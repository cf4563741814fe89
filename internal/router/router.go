package router

import (
	"time"

	"bomboniere/internal/config"
	"bomboniere/internal/handler"
	"bomboniere/internal/middleware"
	"bomboniere/internal/repository"
	"bomboniere/internal/service"
	"bomboniere/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, notif worker.Notificador) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	sessaoRepo := repository.NewSessaoRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	vendaRepo := repository.NewVendaRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	fornecedorRepo := repository.NewFornecedorRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(
		usuarioRepo, sessaoRepo,
		time.Duration(cfg.SessionTTLMinutes)*time.Minute,
		time.Duration(cfg.RememberMeTTLDays)*24*time.Hour,
	)
	produtoSvc := service.NewProdutoService(produtoRepo, rdb)
	caixaSvc := service.NewCaixaService(caixaRepo, notif)
	vendaSvc := service.NewVendaService(vendaRepo, produtoRepo, caixaRepo, notif, cfg.PDFStoragePath)
	dashboardSvc := service.NewDashboardService(vendaRepo, produtoRepo, caixaRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	fornecedorSvc := service.NewFornecedorService(fornecedorRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	produtosH := handler.NewProdutoHandler(produtoSvc)
	vendasH := handler.NewVendaHandler(vendaSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc, decimal.NewFromFloat(cfg.MetaMensal))
	clientesH := handler.NewClienteHandler(clienteSvc)
	fornecedoresH := handler.NewFornecedorHandler(fornecedorSvc)
	categoriasH := handler.NewCategoriaHandler(categoriaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.POST("/v1/auth/login", middleware.LoginRateLimiter(), authH.Login)

	// Protected routes
	authMW := middleware.SessionAuth(authSvc)
	v1 := r.Group("/v1", authMW)
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/logout", authH.Logout)
			auth.GET("/me", authH.Me)
			auth.POST("/refresh", authH.Refresh)
		}

		caixa := v1.Group("/caixa")
		{
			caixa.GET("/status", caixaH.Status)
			caixa.POST("/abrir", caixaH.Abrir)
			caixa.PUT("/atualizar", caixaH.Atualizar)
			caixa.POST("/movimentacoes", caixaH.RegistrarMovimentacao)
			caixa.POST("/fechar", caixaH.Fechar)
			caixa.GET("/fechamentos", caixaH.ListarFechamentos)
			caixa.GET("/fechamentos/:id", caixaH.ObterFechamento)
			caixa.DELETE("/fechamentos", caixaH.LimparFechamentos)
		}

		vendas := v1.Group("/vendas")
		{
			vendas.POST("", vendasH.Finalizar)
			vendas.GET("", vendasH.Listar)
			vendas.GET("/stats/resumo", vendasH.Resumo)
			vendas.GET("/:id", vendasH.Obter)
			vendas.GET("/:id/cupom", vendasH.Cupom)
		}

		produtos := v1.Group("/produtos")
		{
			produtos.POST("", produtosH.Criar)
			produtos.GET("", produtosH.Listar)
			produtos.GET("/barcode/:codigo", produtosH.ObterPorBarcode)
			produtos.GET("/:id", produtosH.Obter)
			produtos.PUT("/:id", produtosH.Atualizar)
			produtos.DELETE("/:id", produtosH.Remover)
			produtos.POST("/:id/reativar", produtosH.Reativar)
		}

		clientes := v1.Group("/clientes")
		{
			clientes.POST("", clientesH.Criar)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obter)
			clientes.PUT("/:id", clientesH.Atualizar)
			clientes.DELETE("/:id", clientesH.Remover)
			clientes.POST("/:id/reativar", clientesH.Reativar)
		}

		fornecedores := v1.Group("/fornecedores")
		{
			fornecedores.POST("", fornecedoresH.Criar)
			fornecedores.GET("", fornecedoresH.Listar)
			fornecedores.GET("/:id", fornecedoresH.Obter)
			fornecedores.PUT("/:id", fornecedoresH.Atualizar)
			fornecedores.DELETE("/:id", fornecedoresH.Remover)
			fornecedores.POST("/:id/reativar", fornecedoresH.Reativar)
		}

		categorias := v1.Group("/categorias")
		{
			categorias.POST("", categoriasH.Criar)
			categorias.GET("", categoriasH.Listar)
			categorias.GET("/:id", categoriasH.Obter)
			categorias.PUT("/:id", categoriasH.Atualizar)
			categorias.DELETE("/:id", categoriasH.Remover)
		}

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/resumo", dashboardH.Resumo)
			dashboard.GET("/grafico", dashboardH.Grafico)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
