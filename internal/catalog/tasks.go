package catalog

import "github.com/metalagman/boardfill/internal/task"

func tasks() []task.Task {
	return []task.Task{
		{
			Name: "Swift SDK: Video Synchronization System",
			Description: `Implement video synchronization for polls and contests

**Archivos creados/modificados:**
- ` + "`Sources/ReachuEngagementSystem/Managers/VideoSyncManager.swift`" + ` (nuevo)
- ` + "`Sources/ReachuEngagementSystem/Models/EngagementModels.swift`" + ` (actualizado)
- ` + "`Sources/ReachuEngagementSystem/Managers/EngagementManager.swift`" + ` (actualizado)
- ` + "`Sources/ReachuEngagementSystem/Data/BackendEngagementRepository.swift`" + ` (actualizado)
- ` + "`Demo/Viaplay/Viaplay/Views/ViaplayCastingActiveView.swift`" + ` (actualizado)
- ` + "`Documentation/VIDEO_SYNC_API_SPEC.md`" + ` (nuevo)

**Funcionalidad:**
- Sincronización de polls/contests con tiempo de reproducción del video
- Soporte para videos en vivo y grabados
- Timestamps relativos al inicio del partido (videoStartTime, videoEndTime)
- Fallback a timestamps absolutos para backward compatibility

**Estado:** ✅ Implementado en SDK`,
			Checklist: []string{
				"VideoSyncManager creado y funcionando",
				"Modelos actualizados con campos de video sync",
				"EngagementManager integrado con VideoSyncManager",
				"BackendEngagementRepository parsea nuevos campos",
				"ViaplayCastingActiveView integrado con VideoSyncManager",
				"Documentación VIDEO_SYNC_API_SPEC.md creada",
			},
			Tags: []string{"swift", "sdk", "video", "polls", "integration", "priority-high"},
		},
		{
			Name: "Swift SDK: Dynamic Configuration System",
			Description: `Implement dynamic configuration management from backend

**Archivos creados/modificados:**
- ` + "`Sources/ReachuCore/Managers/DynamicConfigurationManager.swift`" + ` (nuevo)
- ` + "`Sources/ReachuCore/Models/DynamicConfigModels.swift`" + ` (nuevo)
- ` + "`Sources/ReachuCore/Network/ConfigAPIClient.swift`" + ` (nuevo)
- ` + "`Sources/ReachuCore/Managers/CampaignManager.swift`" + ` (actualizado)
- ` + "`Sources/ReachuCore/Configuration/ReachuConfiguration.swift`" + ` (actualizado)
- ` + "`Documentation/BACKEND_API_SPEC.md`" + ` (nuevo)
- ` + "`Documentation/BACKEND_IMPLEMENTATION_GUIDE.md`" + ` (nuevo)
- ` + "`Documentation/BACKEND_QA_RESPONSES.md`" + ` (nuevo)

**Funcionalidad:**
- Carga de configuración dinámica desde backend
- Caché de configuraciones con TTL
- Invalidación de caché vía WebSocket
- Configuración efectiva que prioriza dinámica sobre estática
- Soporte para brand, engagement, UI, theme, feature flags, localization

**Estado:** ✅ Implementado en SDK`,
			Checklist: []string{
				"DynamicConfigurationManager creado",
				"DynamicConfigModels definidos",
				"ConfigAPIClient implementado",
				"CampaignManager integrado",
				"ReachuConfiguration actualizado con effectiveBrandConfiguration",
				"Documentación BACKEND_API_SPEC.md creada",
				"Documentación BACKEND_IMPLEMENTATION_GUIDE.md creada",
				"Documentación BACKEND_QA_RESPONSES.md creada",
			},
			Tags: []string{"swift", "sdk", "configuration", "api", "backend", "priority-high"},
		},
		{
			Name: "Swift SDK: Engagement Repository Pattern",
			Description: `Refactor engagement system to use repository pattern for demo/backend switching

**Archivos creados/modificados:**
- ` + "`Sources/ReachuEngagementSystem/Data/EngagementRepositoryProtocol.swift`" + ` (nuevo)
- ` + "`Sources/ReachuEngagementSystem/Data/BackendEngagementRepository.swift`" + ` (nuevo)
- ` + "`Sources/ReachuEngagementSystem/Data/DemoEngagementRepository.swift`" + ` (nuevo)
- ` + "`Sources/ReachuEngagementSystem/Managers/EngagementManager.swift`" + ` (refactorizado)
- ` + "`Demo/Viaplay/Viaplay/ViaplayApp.swift`" + ` (actualizado)

**Funcionalidad:**
- Repository pattern para abstraer fuente de datos
- Demo mode usando datos mock
- Backend mode usando API REST
- Cambio dinámico entre modos según configuración
- Soporte para múltiples partidos simultáneos

**Estado:** ✅ Implementado en SDK`,
			Checklist: []string{
				"EngagementRepositoryProtocol definido",
				"BackendEngagementRepository implementado",
				"DemoEngagementRepository implementado",
				"EngagementManager refactorizado para usar repositorios",
				"Demo app configurada con closures para conversión de eventos",
			},
			Tags: []string{"swift", "sdk", "polls", "contests", "demo", "backend", "priority-high"},
		},
		{
			Name: "Backend: Video Sync API Implementation",
			Description: `Implement backend API endpoints for video synchronization

**Endpoints a implementar:**
- ` + "`GET /v1/engagement/polls`" + ` - Agregar campos videoStartTime, videoEndTime, matchStartTime
- ` + "`GET /v1/engagement/contests`" + ` - Agregar campos videoStartTime, videoEndTime, matchStartTime
- ` + "`GET /v1/engagement/config`" + ` - Agregar matchStartTime

**Cambios en base de datos:**
- Agregar columnas video_start_time, video_end_time, match_start_time a polls
- Agregar columnas video_start_time, video_end_time, match_start_time a contests
- Asegurar que matches table tiene match_start_time

**Documentación:** Ver ` + "`Documentation/VIDEO_SYNC_API_SPEC.md`" + `

**Estado:** ⏳ Pendiente implementación backend`,
			Checklist: []string{
				"Actualizar esquema de base de datos (polls y contests)",
				"Implementar campos videoStartTime/videoEndTime en endpoints",
				"Implementar campo matchStartTime en endpoints",
				"Actualizar queries SQL para incluir nuevos campos",
				"Probar endpoints con datos de ejemplo",
				"Validar cálculo de timestamps relativos",
			},
			Tags: []string{"backend", "api", "database", "video", "polls", "contests", "priority-high"},
		},
		{
			Name: "Backend: Dynamic Configuration API Implementation",
			Description: `Implement backend API endpoints for dynamic configuration

**Endpoints a implementar:**
- ` + "`GET /v1/campaigns/{campaignId}/config`" + ` - Configuración completa de campaña
- ` + "`GET /v1/engagement/config`" + ` - Configuración de engagement
- ` + "`GET /v1/localization/{language}`" + ` - Traducciones
- WebSocket event ` + "`config:updated`" + ` - Invalidación de caché

**Cambios en base de datos:**
- Crear tablas según BACKEND_IMPLEMENTATION_GUIDE.md
- Implementar queries para configuraciones dinámicas
- Implementar sistema de caché con TTL

**Documentación:** Ver ` + "`Documentation/BACKEND_API_SPEC.md`" + ` y ` + "`Documentation/BACKEND_IMPLEMENTATION_GUIDE.md`" + `

**Estado:** ⏳ Pendiente implementación backend`,
			Checklist: []string{
				"Crear tablas según BACKEND_IMPLEMENTATION_GUIDE.md",
				"Implementar endpoint GET /v1/campaigns/{campaignId}/config",
				"Implementar endpoint GET /v1/engagement/config",
				"Implementar endpoint GET /v1/localization/{language}",
				"Implementar evento WebSocket config:updated",
				"Implementar sistema de caché con TTL",
				"Probar endpoints con datos de ejemplo",
			},
			Tags: []string{"backend", "api", "database", "configuration", "websocket", "priority-high"},
		},
	}
}
